package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/remote"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the snapshot sync server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Snapshots == nil || app.Users == nil || app.Tokens == nil || app.UoW == nil {
				return fmt.Errorf("server repositories are not wired")
			}

			auth := remote.NewAuthService(app.Users, app.Tokens, app.UoW)
			srv := remote.NewServer(auth, app.Snapshots, app.Logger)

			app.Logger.Info("sync server listening", "addr", addr)
			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8799", "Listen address")

	return cmd
}
