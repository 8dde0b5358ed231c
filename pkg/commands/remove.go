package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete an entry permanently",
		Example: `
penpal remove 1756461600000
penpal remove 1756461600000 --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			r := remove.Remove{
				ID:      id,
				Yes:     co.Yes,
				Service: env.Service,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddYesArg(cmd, co)

	topLevel.AddCommand(cmd)
}
