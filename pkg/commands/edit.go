package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of an entry",
		Example: `
penpal edit 1756461600000 書き直した日記の本文
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			e := edit.Edit{
				ID:      id,
				Content: strings.Join(args[1:], " "),
				Service: env.Service,
			}
			return output.HandleError(e.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
