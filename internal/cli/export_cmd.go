package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tracked time",
	}

	cmd.AddCommand(newExportCSVCmd(app), newExportBackupCmd(app))

	return cmd
}

func newExportCSVCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "csv FILE",
		Short: "Write all intervals as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}

			// Node slice order is creation order; the tasks map is not.
			tasks := make([]*domain.Task, 0, len(st.Nodes()))
			for _, n := range st.Nodes() {
				if t := st.Task(n.ID); t != nil {
					tasks = append(tasks, t)
				}
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()

			if err := export.WriteCSV(f, tasks); err != nil {
				return err
			}
			fmt.Printf("Exported %d goals to %s\n", len(tasks), args[0])
			return nil
		},
	}
}

func newExportBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup FILE",
		Short: "Write a full JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.loadState(context.Background())
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()

			if err := export.WriteBackup(f, st.Snapshot(), time.Now()); err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", args[0])
			return nil
		},
	}
}

func newRestoreCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace all data from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !force {
				existing, err := app.Store.Load(ctx)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("existing data would be overwritten; pass --force to restore anyway")
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			snap, err := export.ReadBackup(f)
			if err != nil {
				return err
			}

			st := engine.FromSnapshot(snap, app.Engine)
			if err := app.saveState(ctx, st); err != nil {
				return err
			}
			fmt.Printf("Restored %d goals from %s\n", len(st.Nodes()), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing data")

	return cmd
}
