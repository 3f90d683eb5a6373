// This file builds the threaded-comment forest from the flat list the
// backend returns.
package roadmap

// CommentNode is a comment with its replies attached, in the order the
// replies appeared in the source list.
type CommentNode struct {
	Comment  Comment
	Children []*CommentNode
}

// BuildForest organizes a flat comment list into a forest of top-level
// comments with nested replies. Two passes, O(n):
//
//  1. map every comment id to a node with no children;
//  2. walk the input in order, attaching each comment to its parent's
//     children, or to the root list when it has no parent.
//
// A comment whose parent id is absent from the input is dropped entirely.
// Duplicate ids overwrite in the map, last one wins. The result is
// deterministic for a fixed input and preserves insertion order within
// every sibling group.
func BuildForest(comments []Comment) []*CommentNode {
	nodes := make(map[int64]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c}
	}

	var roots []*CommentNode
	for _, c := range comments {
		if c.ParentComment == nil {
			roots = append(roots, nodes[c.ID])
			continue
		}
		if parent, ok := nodes[*c.ParentComment]; ok {
			parent.Children = append(parent.Children, nodes[c.ID])
		}
		// Orphans (dangling parent id) are unreachable from any root.
	}

	return roots
}

// CountNodes returns the number of comments reachable in the forest.
func CountNodes(forest []*CommentNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Children)
	}
	return n
}
