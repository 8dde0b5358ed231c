package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/identity"
	"tableflip.dev/penpal/pkg/runner/login"
	"tableflip.dev/penpal/pkg/store"
)

// identityProvider builds the file session provider without loading the full
// app; login must work before any journal exists.
func identityProvider() (*identity.FileProvider, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return identity.NewFileProvider(cfg.BasePath()), nil
}

func addLogin(topLevel *cobra.Command) {
	var server, user string
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a sync server and use its journal",
		Example: `
penpal login --server https://sync.example.com --user alice --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := identityProvider()
			if err != nil {
				return err
			}
			l := login.Login{
				Server:   server,
				User:     user,
				Yes:      co.Yes,
				Identity: ident,
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "Sync server base URL.")
	cmd.Flags().StringVar(&user, "user", "", "User id on the sync server.")
	options.AddYesArg(cmd, co)
	topLevel.AddCommand(cmd)

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and return to the local journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := identityProvider()
			if err != nil {
				return err
			}
			l := login.Logout{Identity: ident}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(logout)

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := identityProvider()
			if err != nil {
				return err
			}
			w := login.Whoami{Identity: ident}
			return output.HandleError(w.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(whoami)
}
