// Package backup holds the export and import runners. Export writes the
// journal to a JSON file; import restores one, replacing the current journal.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/export"
)

type Export struct {
	File string // empty picks a dated default name

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}

	name := n.File
	if name == "" {
		name = export.DefaultFilename(time.Now())
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	entries := n.Service.Entries()
	if err := export.Write(f, entries, time.Now()); err != nil {
		return err
	}
	fmt.Printf("wrote %d entries to %s\n", len(entries), name)
	return nil
}

type Import struct {
	File string
	Yes  bool // skip the confirmation prompt

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	if n.File == "" {
		return errors.New("a backup file is required")
	}

	f, err := os.Open(n.File)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := export.Read(f)
	if err != nil {
		return err
	}

	if current := n.Service.Entries(); len(current) > 0 && !n.Yes {
		return fmt.Errorf("import replaces the current %d entries, re-run with --yes to continue", len(current))
	}

	if err := n.Service.ReplaceEntries(ctx, entries); err != nil {
		return err
	}
	fmt.Printf("imported %d entries from %s\n", len(entries), n.File)
	return nil
}
