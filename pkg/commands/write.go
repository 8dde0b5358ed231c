package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Write a diary entry and let the selected personas reply",
		Example: `
penpal write 今日は早起きして散歩した
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			w := write.Write{
				Content: strings.Join(args, " "),
				Service: env.Service,
			}
			return output.HandleError(w.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
