package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/cli/formatter"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}

			events := st.Events().Export()
			if limit > 0 && len(events) > limit {
				events = events[len(events)-limit:]
			}
			fmt.Printf("%s\n", formatter.FormatEvents(events))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show (0 for all)")

	return cmd
}
