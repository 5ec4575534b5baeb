package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/persist"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local data with the sync server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RemoteURL == "" {
				return fmt.Errorf("no sync server configured; set MINDMIRROR_REMOTE")
			}
			sess, err := app.loadSession()
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("not logged in; run `mindmirror login` first")
			}

			ctx := context.Background()
			st, err := app.loadState(ctx)
			if err != nil {
				return err
			}

			client := app.NewRemote(app.RemoteURL, sess.Token)
			coordinator := persist.NewCoordinator(client, app.Logger)
			result, err := coordinator.Sync(ctx, sess.UserID, st.Snapshot())
			if err != nil {
				return err
			}

			if result.Source == "remote" {
				adopted := engine.FromSnapshot(result.Snapshot, app.Engine)
				if err := app.saveState(ctx, adopted); err != nil {
					return err
				}
				fmt.Println("Remote data was newer; local data replaced.")
				return nil
			}

			if result.Pushed {
				fmt.Println("Synced using local data.")
			} else {
				fmt.Println("Already in sync.")
			}
			return nil
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the sync server (signs up unknown emails)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RemoteURL == "" {
				return fmt.Errorf("no sync server configured; set MINDMIRROR_REMOTE")
			}

			if (email == "" || password == "") && app.IsInteractive != nil && app.IsInteractive() {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Email").Value(&email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				)).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			client := app.NewRemote(app.RemoteURL, "")
			userID, err := client.Login(context.Background(), email, password)
			if err != nil {
				return err
			}

			if err := app.saveSession(&session{UserID: userID, Token: client.Token()}); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and revoke the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession()
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Println("Not logged in.")
				return nil
			}

			if app.RemoteURL != "" {
				client := app.NewRemote(app.RemoteURL, sess.Token)
				if err := client.Logout(context.Background()); err != nil {
					app.Logger.Warn("remote logout failed, clearing local session anyway", "error", err)
				}
			}

			if err := app.clearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
