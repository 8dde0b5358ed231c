package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show the journal, or one entry by id",
		Example: `
penpal get
penpal get --show-id
penpal get 1756461600000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return err
				}
				io.ID = id
			}
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:  io.ShowID,
				ID:      io.ID,
				Service: env.Service,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
