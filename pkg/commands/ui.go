package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	teaui "tableflip.dev/penpal/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive journal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return teaui.Run(env.Service)
		},
	}

	topLevel.AddCommand(cmd)
}
