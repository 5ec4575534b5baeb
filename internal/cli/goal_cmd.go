package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/cli/formatter"
	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/layout"
)

// defaultCenter is where new goals are placed when no position is given.
var defaultCenter = domain.Position{X: 600, Y: 400}

const (
	defaultWidth  = 200
	defaultHeight = 100
)

func newResolver() *layout.Resolver {
	return layout.NewResolver(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalRenameCmd(app),
		newGoalRemoveCmd(app),
		newGoalMoveCmd(app),
		newGoalResizeCmd(app),
		newGoalCollapseCmd(app),
		newGoalExpandCmd(app),
	)

	return cmd
}

func newGoalAddCmd(app *App) *cobra.Command {
	var at, size string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a new goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			box := domain.Size{Width: defaultWidth, Height: defaultHeight}
			if size != "" {
				var err error
				if box, err = parseSize(size); err != nil {
					return err
				}
			}

			return app.withState(context.Background(), func(st *engine.State) error {
				var pos domain.Position
				placed := false
				if at != "" {
					var err error
					if pos, err = parsePosition(at); err != nil {
						return err
					}
					placed = true
				}

				id := st.AddTask(name, pos, box)
				if !placed {
					st.PlaceNode(id, defaultCenter, newResolver())
				}

				task := st.Task(id)
				fmt.Printf("Created goal %s (%s, target %s)\n",
					task.Name, shortID(id), domain.FormatClock(int64(box.TargetSeconds())))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Canvas position (X,Y); placed automatically when omitted")
	cmd.Flags().StringVar(&size, "size", "", "Bounding box (WIDTHxHEIGHT); the box area sets the target time")

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}

			rows := make([]formatter.GoalRow, 0, len(st.Nodes()))
			for _, n := range st.Nodes() {
				task := st.Task(n.ID)
				if task == nil {
					continue
				}
				parentName := ""
				if pid := st.Parent(n.ID); pid != "" {
					if pt := st.Task(pid); pt != nil {
						parentName = pt.Name
					}
				}
				rows = append(rows, formatter.GoalRow{
					Name:           task.Name,
					ID:             n.ID,
					ParentName:     parentName,
					TrackedSeconds: st.AggregatedSeconds(n.ID),
					Running:        task.IsRunning,
				})
			}

			fmt.Printf("%s\n", formatter.FormatGoalList(rows))
			return nil
		},
	}
}

func newGoalRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename GOAL NAME",
		Short: "Rename a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				final := st.RenameTask(id, args[1])
				fmt.Printf("Renamed goal to %s\n", final)
				return nil
			})
		},
	}
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	var mergeInto string
	var force bool

	cmd := &cobra.Command{
		Use:   "remove GOAL",
		Short: "Remove a goal, optionally merging its time into another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				task := st.Task(id)

				mergeID := ""
				if mergeInto != "" {
					if mergeID, err = resolveGoalID(st, mergeInto); err != nil {
						return err
					}
				}

				if !force && app.IsInteractive != nil && app.IsInteractive() {
					confirmed := false
					prompt := fmt.Sprintf("Remove goal %q (%s tracked)?",
						task.Name, domain.FormatClock(st.AggregatedSeconds(id)))
					form := huh.NewForm(huh.NewGroup(
						huh.NewConfirm().Title(prompt).Value(&confirmed),
					)).WithShowHelp(false)
					if err := form.Run(); err != nil {
						return err
					}
					if !confirmed {
						return fmt.Errorf("aborted")
					}
				}

				if !st.Delete(id, mergeID) {
					return fmt.Errorf("goal not found: %q", args[0])
				}
				if mergeID != "" {
					fmt.Printf("Removed goal %s, time merged into %s\n", task.Name, st.Task(mergeID).Name)
				} else {
					fmt.Printf("Removed goal %s\n", task.Name)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mergeInto, "merge-into", "", "Goal to receive the removed goal's tracked time")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func newGoalMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move GOAL X,Y",
		Short: "Move a goal on the canvas",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				st.MoveNode(id, pos)
				fmt.Printf("Moved goal %s to %.0f,%.0f\n", st.Task(id).Name, pos.X, pos.Y)
				return nil
			})
		},
	}
}

func newGoalResizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resize GOAL WIDTHxHEIGHT",
		Short: "Resize a goal's box, changing its target time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := parseSize(args[1])
			if err != nil {
				return err
			}
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				if !st.ResizeNode(id, box, newResolver()) {
					return fmt.Errorf("resize rejected: box would overlap an unrelated goal")
				}
				fmt.Printf("Resized goal %s (target %s)\n",
					st.Task(id).Name, domain.FormatClock(int64(box.TargetSeconds())))
				return nil
			})
		},
	}
}

func newGoalCollapseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "collapse GOAL",
		Short: "Hide a goal's subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				st.SetCollapsed(id, true)
				fmt.Printf("Collapsed %s\n", st.Task(id).Name)
				return nil
			})
		},
	}
}

func newGoalExpandCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expand GOAL",
		Short: "Show a goal's subtree again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				st.SetCollapsed(id, false)
				fmt.Printf("Expanded %s\n", st.Task(id).Name)
				return nil
			})
		},
	}
}

func parsePosition(s string) (domain.Position, error) {
	var p domain.Position
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f,%f", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("invalid position %q, expected X,Y", s)
	}
	return p, nil
}

func parseSize(s string) (domain.Size, error) {
	var sz domain.Size
	if _, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%fx%f", &sz.Width, &sz.Height); err != nil {
		return sz, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	if sz.Width < layout.MinDimensionPx || sz.Height < layout.MinDimensionPx {
		return sz, fmt.Errorf("size %q below the %dpx minimum dimension", s, int(layout.MinDimensionPx))
	}
	return sz, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
