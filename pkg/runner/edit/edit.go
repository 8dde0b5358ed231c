package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/printers"
)

type Edit struct {
	ID      int64
	Content string

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}

	e, err := n.Service.Update(ctx, n.ID, n.Content)
	switch {
	case errors.Is(err, app.ErrEmptyContent):
		return errors.New("nothing to save, the replacement text is empty")
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("no entry with id %d", n.ID)
	case err != nil:
		return err
	}

	pp := printers.PrettyPrint{Resolve: n.Service.FindPersona}
	fmt.Println("")
	pp.Entry(e)
	return nil
}
