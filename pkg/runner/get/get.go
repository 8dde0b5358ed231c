package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/printers"
)

type Get struct {
	ShowID bool
	ID     int64 // 0 lists the whole journal

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Resolve: n.Service.FindPersona}
	fmt.Println("")

	if n.ID != 0 {
		e, ok := n.Service.Entry(n.ID)
		if !ok {
			return fmt.Errorf("no entry with id %d", n.ID)
		}
		pp.Entry(e)
		return nil
	}

	all := n.Service.Entries()
	pp.TitleWithCount("Journal", len(all))
	pp.Journal(all...)
	return nil
}
