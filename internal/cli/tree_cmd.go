package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/cli/formatter"
	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
)

func newTreeCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the goal hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}

			items := buildTreeItems(st, all)
			if len(items) == 0 {
				fmt.Println(formatter.Dim("No goals yet. Create one with `goal add`."))
				return nil
			}
			fmt.Print(formatter.RenderTree(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include goals inside collapsed subtrees")

	return cmd
}

// buildTreeItems walks the hierarchy depth-first, honoring collapse state
// unless all is set.
func buildTreeItems(st *engine.State, all bool) []formatter.TreeItem {
	var items []formatter.TreeItem

	var walk func(id string, level int, isLast bool)
	walk = func(id string, level int, isLast bool) {
		task := st.Task(id)
		if task == nil {
			return
		}
		collapsed := st.IsCollapsed(id)
		items = append(items, formatter.TreeItem{
			Title:     task.Name,
			Level:     level,
			IsLast:    isLast,
			Running:   task.IsRunning,
			Collapsed: collapsed && len(st.Children(id)) > 0,
			Tracked:   domain.FormatClock(st.AggregatedSeconds(id)),
		})
		if collapsed && !all {
			return
		}
		children := st.Children(id)
		for i, childID := range children {
			walk(childID, level+1, i == len(children)-1)
		}
	}

	roots := st.MainNodes()
	for i, root := range roots {
		walk(root.ID, 0, i == len(roots)-1)
	}
	return items
}
