package analyze

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/gemini"
	"tableflip.dev/penpal/pkg/printers"
)

type Analyze struct {
	ID     int64
	Remove bool // strip an existing report instead of generating one

	Service *app.Service
}

func (n *Analyze) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not analyze, no service")
	}

	if n.Remove {
		e, err := n.Service.RemoveAnalysis(ctx, n.ID)
		if errors.Is(err, app.ErrNotFound) {
			return fmt.Errorf("no entry with id %d", n.ID)
		}
		if err != nil {
			return err
		}
		fmt.Printf("removed the report from entry %d (%s)\n", e.ID, e.Date)
		return nil
	}

	e, err := n.Service.Analyze(ctx, n.ID)
	switch {
	case errors.Is(err, app.ErrNoAPIKey):
		return errors.New("no API key configured, set one with `penpal config set-key`")
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("no entry with id %d", n.ID)
	case errors.Is(err, gemini.ErrUnavailable):
		return errors.New("the analysis service is unavailable right now, try again later")
	case err != nil:
		return err
	}

	pp := printers.PrettyPrint{Resolve: n.Service.FindPersona}
	fmt.Println("")
	pp.Entry(e)
	return nil
}
