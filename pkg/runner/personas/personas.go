// Package personas holds the runners for roster management: listing, adding,
// removing, selecting, hiding, and ordering the cast that comments on
// entries.
package personas

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/glyph"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/printers"
)

type List struct {
	All bool // include hidden personas

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list personas, no service")
	}
	r := n.Service.Registry
	roster := r.ListVisible()
	if n.All {
		roster = r.ListAll()
	}
	fmt.Println("")
	fmt.Println(printers.PersonaTable(roster, r.SelectedIDs(), r.HiddenIDs()))
	return nil
}

type Add struct {
	Name        string
	Role        string
	Icon        string
	Color       string
	Description string

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add persona, no service")
	}
	var tag glyph.ColorTag
	if n.Color != "" {
		var err error
		tag, err = glyph.ParseColor(n.Color)
		if err != nil {
			return err
		}
	}
	added, err := n.Service.AddPersona(ctx, persona.Persona{
		Name:        n.Name,
		Role:        n.Role,
		Icon:        n.Icon,
		Color:       tag,
		Description: n.Description,
	})
	if errors.Is(err, persona.ErrMissingFields) {
		return errors.New("name, role, and description are all required")
	}
	if err != nil {
		return err
	}
	fmt.Printf("added %s %s (%s)\n", added.Glyph().Symbol, added.Name, added.ID)
	return nil
}

type Remove struct {
	ID string

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove persona, no service")
	}
	p, ok := n.Service.FindPersona(n.ID)
	if !ok {
		return fmt.Errorf("no persona with id %q", n.ID)
	}
	if p.Builtin {
		return fmt.Errorf("%s is built in and can not be removed, hide it instead", p.Name)
	}
	if err := n.Service.RemovePersona(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", p.Name)
	return nil
}

type Select struct {
	ID       string
	Deselect bool

	Service *app.Service
}

func (n *Select) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not change selection, no service")
	}
	if n.Deselect {
		if err := n.Service.DeselectPersona(ctx, n.ID); err != nil {
			return err
		}
		fmt.Printf("deselected %s\n", n.ID)
		return nil
	}
	if err := n.Service.SelectPersona(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("selected %s\n", n.ID)
	return nil
}

type Hide struct {
	ID string

	Service *app.Service
}

func (n *Hide) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not toggle visibility, no service")
	}
	if _, ok := n.Service.FindPersona(n.ID); !ok {
		return fmt.Errorf("no persona with id %q", n.ID)
	}
	return n.Service.TogglePersonaVisibility(ctx, n.ID)
}

type Move struct {
	ID   string
	Down bool

	Service *app.Service
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reorder, no service")
	}
	dir := persona.Up
	if n.Down {
		dir = persona.Down
	}
	return n.Service.MovePersona(ctx, n.ID, dir)
}
