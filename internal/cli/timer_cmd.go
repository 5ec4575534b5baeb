package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/cli/formatter"
	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
)

func newStartCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "start GOAL",
		Short: "Start a goal's timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				task := st.Task(id)
				if task.IsRunning {
					fmt.Printf("Timer for %s is already running\n", task.Name)
					return nil
				}
				st.StartTimer(id, note)
				fmt.Printf("Started %s\n", task.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Start note; auto-generated when omitted")

	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	var note, allocate, newChild string
	var noteOnly bool

	cmd := &cobra.Command{
		Use:   "stop GOAL",
		Short: "Stop a goal's timer and commit the elapsed time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allocate != "" && newChild != "" {
				return fmt.Errorf("--allocate and --new-child are mutually exclusive")
			}

			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				task := st.Task(id)
				if !task.IsRunning {
					return fmt.Errorf("no timer running for %s", task.Name)
				}

				req := domain.PlainStop(note)
				switch {
				case noteOnly:
					req = domain.AddNoteOnly(note)
				case allocate != "":
					subID, err := resolveGoalID(st, allocate)
					if err != nil {
						return err
					}
					req = domain.AllocateExisting(subID, note)
				case newChild != "":
					req = domain.CreateNew(newChild, note)
				}

				result, err := st.StopTimer(id, req)
				if err != nil {
					return err
				}
				if result == nil {
					return nil
				}
				if noteOnly {
					fmt.Printf("Noted; %s keeps running\n", task.Name)
					return nil
				}

				if result.CreatedNodeID != "" {
					st.PlaceNode(result.CreatedNodeID, defaultCenter, newResolver())
				}

				target := st.Task(result.CommittedTo)
				fmt.Printf("Stopped %s after %s, credited to %s\n",
					task.Name, domain.FormatClock(result.Elapsed), target.Name)
				for _, sim := range result.Simultaneous {
					fmt.Printf("%s\n", formatter.Dim(fmt.Sprintf(
						"Note: %s was running simultaneously (%s)", sim.Name, domain.FormatClock(sim.Elapsed))))
				}

				printFeedback(st.EvaluateAlignment(false))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Stop note")
	cmd.Flags().StringVar(&allocate, "allocate", "", "Credit the elapsed time to this existing child goal")
	cmd.Flags().StringVar(&newChild, "new-child", "", "Create a child goal with this name and credit it")
	cmd.Flags().BoolVar(&noteOnly, "note-only", false, "Append the note and keep the timer running")

	return cmd
}

func newNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note GOAL TEXT",
		Short: "Attach a note to a goal's current interval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				st.AddNote(id, args[1])
				fmt.Printf("Noted on %s\n", st.Task(id).Name)
				return nil
			})
		},
	}
}

func newAdjustCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "adjust GOAL SECONDS",
		Short: "Manually adjust a goal's tracked time",
		Long:  "Adjust a goal's tracked time by a signed number of seconds. A note explaining the adjustment is required.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int64
			if _, err := fmt.Sscanf(args[1], "%d", &delta); err != nil {
				return fmt.Errorf("invalid adjustment %q, expected a signed number of seconds", args[1])
			}

			return app.withState(context.Background(), func(st *engine.State) error {
				id, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				if err := st.AdjustTime(id, delta, note); err != nil {
					return err
				}
				fmt.Printf("Adjusted %s, now %s\n",
					st.Task(id).Name, domain.FormatClock(st.AggregatedSeconds(id)))

				printFeedback(st.EvaluateAlignment(false))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Reason for the adjustment (required)")
	_ = cmd.MarkFlagRequired("note")

	return cmd
}

// printFeedback surfaces crowns and damage raised by an alignment change.
func printFeedback(events []engine.FeedbackEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.FeedbackCrown:
			fmt.Printf("%s Perfect alignment! Crown #%d earned.\n",
				formatter.StyleYellowBold.Render("♛"), ev.CrownCount)
		case engine.FeedbackDamage:
			fmt.Printf("%s\n", formatter.StyleRed.Render(fmt.Sprintf(
				"Alignment dropped to %d%% (%s)", ev.Score, ev.Severity)))
		}
	}
}
