package options

import (
	"github.com/spf13/cobra"
)

// PersonaOptions captures the flags used when creating a persona.
type PersonaOptions struct {
	Name        string
	Role        string
	Icon        string
	Color       string
	Description string
}

func AddPersonaArgs(cmd *cobra.Command, o *PersonaOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Display name for the persona (up to 20 characters).")
	cmd.Flags().StringVar(&o.Role, "role", "",
		"Short role label (up to 10 characters).")
	cmd.Flags().StringVar(&o.Icon, "icon", "",
		"Icon glyph key, for example grin or robot.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Name color tag, for example green or purple.")
	cmd.Flags().StringVar(&o.Description, "description", "",
		Wrap80("Character sketch used in the generation prompt (up to 200 characters)."))
}
