package roadmap

import (
	"reflect"
	"testing"
)

func flat(id int64, parent int64) Comment {
	c := Comment{ID: id}
	if parent != 0 {
		p := parent
		c.ParentComment = &p
	}
	return c
}

func ids(nodes []*CommentNode) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Comment.ID)
	}
	return out
}

func TestBuildForestEmpty(t *testing.T) {
	if got := BuildForest(nil); len(got) != 0 {
		t.Errorf("BuildForest(nil): got %d roots, want 0", len(got))
	}
	if got := BuildForest([]Comment{}); len(got) != 0 {
		t.Errorf("BuildForest([]): got %d roots, want 0", len(got))
	}
}

func TestBuildForestRootCountMatchesParentlessComments(t *testing.T) {
	input := []Comment{
		flat(1, 0),
		flat(2, 1),
		flat(3, 0),
		flat(4, 3),
		flat(5, 0),
	}

	forest := BuildForest(input)
	if len(forest) != 3 {
		t.Fatalf("root count: got %d, want 3", len(forest))
	}
	if got := ids(forest); !reflect.DeepEqual(got, []int64{1, 3, 5}) {
		t.Errorf("root order: got %v, want [1 3 5]", got)
	}
}

func TestBuildForestNestsRepliesInOriginalOrder(t *testing.T) {
	input := []Comment{
		flat(1, 0),
		flat(4, 1),
		flat(2, 1),
		flat(3, 1),
	}

	forest := BuildForest(input)
	if len(forest) != 1 {
		t.Fatalf("root count: got %d, want 1", len(forest))
	}
	if got := ids(forest[0].Children); !reflect.DeepEqual(got, []int64{4, 2, 3}) {
		t.Errorf("sibling order: got %v, want [4 2 3]", got)
	}
}

func TestBuildForestDropsOrphans(t *testing.T) {
	// Comment 3 references a parent that was never fetched.
	input := []Comment{
		flat(1, 0),
		flat(2, 1),
		flat(3, 99),
	}

	forest := BuildForest(input)
	if len(forest) != 1 {
		t.Fatalf("root count: got %d, want 1", len(forest))
	}
	root := forest[0]
	if root.Comment.ID != 1 {
		t.Errorf("root id: got %d, want 1", root.Comment.ID)
	}
	if len(root.Children) != 1 || root.Children[0].Comment.ID != 2 {
		t.Errorf("children of root: got %v, want [2]", ids(root.Children))
	}
	if len(root.Children[0].Children) != 0 {
		t.Errorf("comment 2 should have no children, got %v", ids(root.Children[0].Children))
	}
	if CountNodes(forest) != 2 {
		t.Errorf("reachable comments: got %d, want 2", CountNodes(forest))
	}
}

func TestBuildForestDeepNesting(t *testing.T) {
	input := []Comment{
		flat(1, 0),
		flat(2, 1),
		flat(3, 2),
	}

	forest := BuildForest(input)
	node := forest[0]
	for _, want := range []int64{1, 2, 3} {
		if node.Comment.ID != want {
			t.Fatalf("chain: got id %d, want %d", node.Comment.ID, want)
		}
		if len(node.Children) > 0 {
			node = node.Children[0]
		}
	}
}

func TestBuildForestDeterministic(t *testing.T) {
	input := []Comment{
		flat(5, 0),
		flat(6, 5),
		flat(7, 0),
		flat(8, 7),
		flat(9, 6),
	}

	first := BuildForest(input)
	second := BuildForest(input)
	if !reflect.DeepEqual(first, second) {
		t.Error("BuildForest is not deterministic for identical input")
	}
}

func TestBuildForestEveryNonOrphanAppearsExactlyOnce(t *testing.T) {
	input := []Comment{
		flat(1, 0),
		flat(2, 1),
		flat(3, 1),
		flat(4, 2),
		flat(5, 42), // orphan
		flat(6, 0),
	}

	forest := BuildForest(input)
	seen := map[int64]int{}
	var walk func(nodes []*CommentNode)
	walk = func(nodes []*CommentNode) {
		for _, n := range nodes {
			seen[n.Comment.ID]++
			walk(n.Children)
		}
	}
	walk(forest)

	for _, id := range []int64{1, 2, 3, 4, 6} {
		if seen[id] != 1 {
			t.Errorf("comment %d appears %d times, want 1", id, seen[id])
		}
	}
	if seen[5] != 0 {
		t.Errorf("orphan comment 5 appears %d times, want 0", seen[5])
	}
}
