package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/engine"
)

func newLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link PARENT CHILD",
		Short: "Attach a goal under a parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				parentID, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				childID, err := resolveGoalID(st, args[1])
				if err != nil {
					return err
				}
				if !st.Link(parentID, childID) {
					return fmt.Errorf("cannot link %s under %s", st.Task(childID).Name, st.Task(parentID).Name)
				}
				fmt.Printf("Linked %s under %s\n", st.Task(childID).Name, st.Task(parentID).Name)
				return nil
			})
		},
	}
}

func newUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink CHILD",
		Short: "Detach a goal from its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withState(context.Background(), func(st *engine.State) error {
				childID, err := resolveGoalID(st, args[0])
				if err != nil {
					return err
				}
				parentID := st.Parent(childID)
				if parentID == "" {
					return fmt.Errorf("goal %s has no parent", st.Task(childID).Name)
				}
				st.Unlink(parentID, childID)
				fmt.Printf("Unlinked %s from %s\n", st.Task(childID).Name, st.Task(parentID).Name)
				return nil
			})
		},
	}
}
