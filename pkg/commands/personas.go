package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/commands/options"
	"tableflip.dev/penpal/pkg/runner/personas"
)

func addPersonas(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "personas",
		Aliases: []string{"persona"},
		Short:   "Manage the cast that comments on your entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPersonasList(cmd)
	addPersonasAdd(cmd)
	addPersonasRemove(cmd)
	addPersonasSelect(cmd)
	addPersonasDeselect(cmd)
	addPersonasHide(cmd)
	addPersonasMove(cmd)

	topLevel.AddCommand(cmd)
}

func addPersonasList(topLevel *cobra.Command) {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List personas; selected ones are marked with *",
		Example: `
penpal personas list
penpal personas list --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			l := personas.List{All: all, Service: env.Service}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include hidden personas.")
	topLevel.AddCommand(cmd)
}

func addPersonasAdd(topLevel *cobra.Command) {
	po := &options.PersonaOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a custom persona",
		Example: `
penpal personas add --name 猫 --role 猫 --description "語尾がにゃん" --icon cat --color orange
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			a := personas.Add{
				Name:        po.Name,
				Role:        po.Role,
				Icon:        po.Icon,
				Color:       po.Color,
				Description: po.Description,
				Service:     env.Service,
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}
	options.AddPersonaArgs(cmd, po)
	topLevel.AddCommand(cmd)
}

func addPersonasRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a custom persona",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			r := personas.Remove{ID: args[0], Service: env.Service}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addPersonasSelect(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Add a persona to the commenting selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			s := personas.Select{ID: args[0], Service: env.Service}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addPersonasDeselect(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "deselect <id>",
		Short: "Drop a persona from the commenting selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			s := personas.Select{ID: args[0], Deselect: true, Service: env.Service}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addPersonasHide(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "hide <id>",
		Short: "Toggle a persona's visibility; hiding also deselects it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			h := personas.Hide{ID: args[0], Service: env.Service}
			return output.HandleError(h.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addPersonasMove(topLevel *cobra.Command) {
	var down bool
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a persona one step in the display order",
		Example: `
penpal personas move gal
penpal personas move gal --down
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			m := personas.Move{ID: args[0], Down: down, Service: env.Service}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Move down instead of up.")
	topLevel.AddCommand(cmd)
}
