package remove

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/entry"
)

type Remove struct {
	ID  int64
	Yes bool // skip the confirmation prompt

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}

	e, ok := n.Service.Entry(n.ID)
	if !ok {
		return fmt.Errorf("no entry with id %d", n.ID)
	}

	if !n.Yes {
		fmt.Printf("delete %s %q? [y/N] ", e.Date, entry.Truncate(e.Content, 30))
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("kept")
			return nil
		}
	}

	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted entry %d\n", n.ID)
	return nil
}
