package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the journal to a JSON backup file",
		Example: `
penpal export
penpal export journal.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			e := backup.Export{Service: env.Service}
			if len(args) == 1 {
				e.File = args[0]
			}
			return output.HandleError(e.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the journal from a backup, replacing current entries",
		Example: `
penpal import penpal-2026-08-29.json --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			i := backup.Import{
				File:    args[0],
				Yes:     co.Yes,
				Service: env.Service,
			}
			return output.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddYesArg(cmd, co)

	topLevel.AddCommand(cmd)
}
