package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/alignment"
	"github.com/mindmirror/mindmirror/internal/cli/formatter"
	"github.com/mindmirror/mindmirror/internal/engine"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the alignment dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatStatus(statusData(st, time.Now())))
			return nil
		},
	}
}

// statusData collects the dashboard's inputs from the engine state.
func statusData(st *engine.State, now time.Time) formatter.StatusData {
	d := formatter.StatusData{
		Overall:      st.OverallAlignment(),
		TotalTracked: st.TotalTrackedSeconds(),
		Achievements: st.Achievements(),
		Now:          now,
	}
	d.Eligible = alignment.FeedbackEligible(d.TotalTracked)

	for _, root := range st.MainNodes() {
		task := st.Task(root.ID)
		if task == nil {
			continue
		}
		d.Roots = append(d.Roots, formatter.RootStatusView{
			Name:           task.Name,
			TrackedSeconds: st.AggregatedSeconds(root.ID),
			TargetSeconds:  int64(root.Size.TargetSeconds()),
			Internal:       st.InternalAlignment(root.ID),
			Task:           task,
		})
	}

	nowMs := now.UnixMilli()
	for _, n := range st.Nodes() {
		task := st.Task(n.ID)
		if task == nil || !task.IsRunning {
			continue
		}
		d.Running = append(d.Running, formatter.RunningView{
			Name:           task.Name,
			ElapsedSeconds: (nowMs - task.StartTime) / 1000,
		})
	}

	return d
}
