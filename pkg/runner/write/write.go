package write

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/printers"
)

type Write struct {
	Content string

	Service *app.Service
}

func (n *Write) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not write, no service")
	}

	e, err := n.Service.Submit(ctx, n.Content)
	switch {
	case errors.Is(err, app.ErrEmptyContent):
		return errors.New("nothing to write, the entry is empty")
	case errors.Is(err, app.ErrNoSelection):
		return errors.New("no personas selected, pick some with `penpal personas select`")
	case errors.Is(err, app.ErrNoAPIKey):
		return errors.New("no API key configured, set one with `penpal config set-key`")
	case err != nil:
		return err
	}

	pp := printers.PrettyPrint{Resolve: n.Service.FindPersona}
	fmt.Println("")
	pp.Entry(e)
	return nil
}
