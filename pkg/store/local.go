package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/logging"
	"tableflip.dev/penpal/pkg/persona"
)

// One diskv key per synchronized collection.
const (
	keyEntries  = "entries"
	keyPersonas = "custom-personas"
	keySelected = "selected-personas"
	keyHidden   = "hidden-personas"
	keyOrder    = "persona-order"
)

// Load creates the local persistence variant backed by diskv under the
// configured base path.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &local{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type local struct {
	d        *diskv.Diskv
	basePath string

	mu     sync.Mutex
	loaded bool
}

// readJSON reads one key into out. A missing key is "no data". A corrupt key
// is also "no data", and the key is proactively erased so the next load is
// clean.
func (l *local) readJSON(key string, out interface{}) (found bool, err error) {
	val, err := l.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if jerr := json.Unmarshal(val, out); jerr != nil {
		logging.Errorf(logging.CategoryStore, "read %s: corrupt record erased: %v", key, jerr)
		if eerr := l.d.Erase(key); eerr != nil {
			logging.Errorf(logging.CategoryStore, "erase %s: %v", key, eerr)
		}
		return false, nil
	}
	return true, nil
}

func (l *local) writeJSON(key string, v interface{}) error {
	l.mu.Lock()
	loaded := l.loaded
	l.mu.Unlock()
	if !loaded {
		return ErrNotLoaded
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.d.Write(key, data)
}

func (l *local) Load(_ context.Context) (*State, error) {
	state := &State{}

	var entries []*entry.Entry
	if _, err := l.readJSON(keyEntries, &entries); err != nil {
		return nil, err
	}
	state.Entries = entry.Filter(entries)

	var personas []persona.Persona
	if _, err := l.readJSON(keyPersonas, &personas); err != nil {
		return nil, err
	}
	state.CustomPersonas = persona.Filter(personas)

	var selected []string
	found, err := l.readJSON(keySelected, &selected)
	if err != nil {
		return nil, err
	}
	state.SelectedIDs = selected
	state.HasSelection = found

	if _, err := l.readJSON(keyHidden, &state.HiddenIDs); err != nil {
		return nil, err
	}
	if _, err := l.readJSON(keyOrder, &state.Order); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.loaded = true
	l.mu.Unlock()
	return state, nil
}

func (l *local) SaveEntries(_ context.Context, entries []*entry.Entry) error {
	return l.writeJSON(keyEntries, entries)
}

func (l *local) SaveCustomPersonas(_ context.Context, personas []persona.Persona) error {
	return l.writeJSON(keyPersonas, personas)
}

func (l *local) SaveSelectedIDs(_ context.Context, ids []string) error {
	return l.writeJSON(keySelected, ids)
}

func (l *local) SaveHiddenIDs(_ context.Context, ids []string) error {
	return l.writeJSON(keyHidden, ids)
}

func (l *local) SaveOrder(_ context.Context, ids []string) error {
	return l.writeJSON(keyOrder, ids)
}

func (l *local) Erase(_ context.Context) error {
	for _, key := range []string{keyEntries, keyPersonas, keySelected, keyHidden, keyOrder} {
		if err := l.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
