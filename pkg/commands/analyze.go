package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/runner/analyze"
)

func addAnalyze(topLevel *cobra.Command) {
	var remove bool

	cmd := &cobra.Command{
		Use:   "analyze <id>",
		Short: "Attach a mood report to an entry, or remove one",
		Example: `
penpal analyze 1756461600000
penpal analyze 1756461600000 --remove
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
			a := analyze.Analyze{
				ID:      id,
				Remove:  remove,
				Service: env.Service,
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the report instead of generating one.")

	topLevel.AddCommand(cmd)
}
