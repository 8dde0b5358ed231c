// Package config holds the runners for local-only settings: the API key, the
// generation model, and the clear-everything escape hatch. None of these
// values ever sync.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/gemini"
	"tableflip.dev/penpal/pkg/store"
)

type SetKey struct {
	Settings *store.Settings
}

// Do prompts for the key without echoing it. Piped input is read as a single
// line instead.
func (n *SetKey) Do(ctx context.Context) error {
	if n.Settings == nil {
		return errors.New("can not set key, no settings")
	}

	var key string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("API key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println("")
		if err != nil {
			return err
		}
		key = string(raw)
	} else {
		var line string
		if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
			return err
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("no key entered")
	}
	if err := n.Settings.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("key saved")
	return nil
}

type ClearKey struct {
	Settings *store.Settings
}

func (n *ClearKey) Do(ctx context.Context) error {
	if n.Settings == nil {
		return errors.New("can not clear key, no settings")
	}
	if err := n.Settings.ClearAPIKey(); err != nil {
		return err
	}
	fmt.Println("key cleared")
	return nil
}

type Model struct {
	Key string // empty shows the current model and the alternatives

	Settings *store.Settings
}

func (n *Model) Do(ctx context.Context) error {
	if n.Settings == nil {
		return errors.New("can not change model, no settings")
	}

	if n.Key == "" {
		current := n.Settings.Model()
		for key, m := range gemini.Models {
			mark := " "
			if key == current {
				mark = "*"
			}
			fmt.Printf("%s %s\t%s\t%s\n", mark, key, m.Name, m.Description)
		}
		return nil
	}

	if _, ok := gemini.Models[n.Key]; !ok {
		return fmt.Errorf("unknown model %q, pick flash or pro", n.Key)
	}
	if err := n.Settings.SetModel(n.Key); err != nil {
		return err
	}
	fmt.Printf("model set to %s\n", n.Key)
	return nil
}

type Clear struct {
	Yes bool

	Service  *app.Service
	Settings *store.Settings
}

// Do erases every local collection and setting, API key included.
func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil || n.Settings == nil {
		return errors.New("can not clear, no service")
	}
	if !n.Yes {
		return errors.New("clearing deletes every entry, persona, and the API key; re-run with --yes to continue")
	}
	if err := n.Service.Erase(ctx); err != nil {
		return err
	}
	if err := n.Settings.Clear(); err != nil {
		return err
	}
	fmt.Println("everything cleared")
	return nil
}
