package store

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/penpal/pkg/gemini"
	"tableflip.dev/penpal/pkg/logging"
)

// Settings keys. These never leave the local machine: the API key in
// particular is deliberately excluded from the remote journal document.
const (
	keyAPIKey   = "api-key"
	keyModel    = "model"
	keyCollapse = "collapse-prefs"
)

// Settings is the per-machine state that stays local regardless of which
// persistence variant is active.
type Settings struct {
	d *diskv.Diskv
}

// LoadSettings opens the local settings store under the configured base path.
func LoadSettings(cfg Config) (*Settings, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &Settings{d: diskv.New(diskv.Options{
		BasePath:     cfg.BasePath(),
		CacheSizeMax: 64 * 1024,
	})}, nil
}

// APIKey returns the stored generative-service credential, or "" when none is
// configured.
func (s *Settings) APIKey() string {
	val, err := s.d.Read(keyAPIKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(val))
}

// SetAPIKey stores the credential locally.
func (s *Settings) SetAPIKey(key string) error {
	return s.d.Write(keyAPIKey, []byte(strings.TrimSpace(key)))
}

// ClearAPIKey removes the credential.
func (s *Settings) ClearAPIKey() error {
	if err := s.d.Erase(keyAPIKey); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Model returns the persisted model key, defaulting when unset.
func (s *Settings) Model() string {
	val, err := s.d.Read(keyModel)
	if err != nil {
		return gemini.DefaultModel
	}
	key := strings.TrimSpace(string(val))
	if _, ok := gemini.Models[key]; !ok {
		return gemini.DefaultModel
	}
	return key
}

// SetModel persists the model selection.
func (s *Settings) SetModel(key string) error {
	if _, ok := gemini.Models[key]; !ok {
		return errors.New("store: unknown model " + key)
	}
	return s.d.Write(keyModel, []byte(key))
}

// CollapsePrefs returns the per-entry section collapse map, keyed
// "<entryID>_<section>". Presentation state only; never synced.
func (s *Settings) CollapsePrefs() map[string]bool {
	val, err := s.d.Read(keyCollapse)
	if err != nil {
		return map[string]bool{}
	}
	prefs := map[string]bool{}
	if err := json.Unmarshal(val, &prefs); err != nil {
		logging.Errorf(logging.CategoryStore, "collapse prefs corrupt, erased: %v", err)
		_ = s.d.Erase(keyCollapse)
		return map[string]bool{}
	}
	return prefs
}

// SetCollapsePref records one section toggle.
func (s *Settings) SetCollapsePref(key string, collapsed bool) error {
	prefs := s.CollapsePrefs()
	prefs[key] = collapsed
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.d.Write(keyCollapse, data)
}

// Clear wipes every local setting, API key included.
func (s *Settings) Clear() error {
	for _, key := range []string{keyAPIKey, keyModel, keyCollapse} {
		if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
