package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/runner/config"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Local settings: API key, model, and the reset switch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addConfigSetKey(cmd)
	addConfigClearKey(cmd)
	addConfigModel(cmd)
	addConfigClear(cmd)

	topLevel.AddCommand(cmd)
}

func addConfigSetKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the Gemini API key (prompted, never echoed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			s := config.SetKey{Settings: env.Settings}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfigClearKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear-key",
		Short: "Forget the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			c := config.ClearKey{Settings: env.Settings}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfigModel(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "model [flash|pro]",
		Short: "Show or set the generation model",
		Example: `
penpal config model
penpal config model pro
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			m := config.Model{Settings: env.Settings}
			if len(args) == 1 {
				m.Key = args[0]
			}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addConfigClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase every local entry, persona, and setting",
		Example: `
penpal config clear --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			c := config.Clear{
				Yes:      co.Yes,
				Service:  env.Service,
				Settings: env.Settings,
			}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}
	options.AddYesArg(cmd, co)
	topLevel.AddCommand(cmd)
}
