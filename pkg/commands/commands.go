package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/penpal/pkg/commands/options"
)

var (
	oo     = &base.OutputOptions{}
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "penpal",
		Short: base.Wrap80("A diary that writes back: AI personas comment on every entry."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addGet(topLevel)
	addUI(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addPersonas(topLevel)
	addAnalyze(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addConfig(topLevel)
	addLogin(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
