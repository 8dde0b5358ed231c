package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/penpal/pkg/persona"
)

// PersonaTable renders the roster with selection and visibility markers.
func PersonaTable(personas []persona.Persona, selected, hidden []string) string {
	table := uitable.New()
	table.MaxColWidth = 50
	table.Wrap = true

	table.AddRow("", "ID", "NAME", "ROLE", "DESCRIPTION")
	for _, p := range personas {
		mark := " "
		if containsID(selected, p.ID) {
			mark = "*"
		}
		name := fmt.Sprintf("%s %s", p.Glyph().Symbol, p.Color.Sprint(p.Name))
		if containsID(hidden, p.ID) {
			name = fmt.Sprintf("%s (hidden)", name)
		}
		table.AddRow(mark, p.ID, name, p.Role, p.Description)
	}
	return table.String()
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
