// list.go implements the "waymark list" command for non-interactive output.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waymark-dev/waymark/internal/log"
	"github.com/waymark-dev/waymark/internal/roadmap"
)

var (
	listStatus   string
	listCategory string
	listSearch   string
	listSort     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roadmap items",
	Long: `Print the roadmap as a table. Works without a session; the voted
marker only appears when logged in.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	filter, err := buildFilter()
	if err != nil {
		return err
	}

	// Hydrate so the voted flag reflects the stored session, if any.
	env.Session.Hydrate(cmd.Context())

	items, err := env.Client.ListItems(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("fetching roadmap: %w", err)
	}

	_ = env.Logger.Append(log.LogEvent{
		Event:    log.EventItemsFetched,
		Items:    len(items),
		Ordering: filter.Ordering,
		Search:   filter.Search,
	})

	if len(items) == 0 {
		fmt.Println("No roadmap items match the given filters.")
		return nil
	}

	for _, item := range items {
		voted := " "
		if item.UserUpvoted {
			voted = "*"
		}
		fmt.Printf("%5d  %s%3d▲  %-12s  %-12s  %s\n",
			item.ID,
			voted,
			item.UpvoteCount,
			roadmap.FormatLabel(string(item.Status)),
			roadmap.FormatLabel(string(item.Category)),
			item.Title,
		)
	}
	fmt.Printf("\n%d items\n", len(items))

	return nil
}

// buildFilter validates the flag values against the known enums.
func buildFilter() (roadmap.Filter, error) {
	filter := roadmap.DefaultFilter()
	filter.Search = listSearch

	if listStatus != "" {
		status := roadmap.Status(listStatus)
		if !contains(roadmap.Statuses, status) {
			return filter, fmt.Errorf("unknown status %q (one of: %s)", listStatus, joinValues(roadmap.Statuses))
		}
		filter.Status = status
	}

	if listCategory != "" {
		category := roadmap.Category(listCategory)
		if !contains(roadmap.Categories, category) {
			return filter, fmt.Errorf("unknown category %q (one of: %s)", listCategory, joinValues(roadmap.Categories))
		}
		filter.Category = category
	}

	if listSort != "" {
		found := false
		for _, o := range roadmap.Orderings {
			if o == listSort {
				found = true
				break
			}
		}
		if !found {
			return filter, fmt.Errorf("unknown sort %q", listSort)
		}
		filter.Ordering = listSort
	}

	return filter, nil
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func joinValues[T ~string](values []T) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += string(v)
	}
	return s
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (e.g. planning, in_progress)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (e.g. feature, bug_fix)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search titles and descriptions")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order (-upvote_count_annotated, upvote_count_annotated, -created_at, created_at)")
}
