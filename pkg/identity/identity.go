// Package identity abstracts the sign-in state that selects the persistence
// variant. The identity service itself is external; all this package holds is
// the session it handed back.
package identity

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Session is the signed-in state: who, against which sync server, with which
// bearer token.
type Session struct {
	User   string `json:"user"`
	Server string `json:"server"`
	Token  string `json:"token"`
}

// Provider exposes the current sign-in state. Absence of a session selects
// the local-only persistence variant.
type Provider interface {
	Current() (*Session, bool)
}

const sessionFile = "session.json"

// FileProvider keeps the session in a file under the journal base path.
type FileProvider struct {
	basePath string
}

// NewFileProvider builds a provider rooted at the journal base path.
func NewFileProvider(basePath string) *FileProvider {
	return &FileProvider{basePath: basePath}
}

func (f *FileProvider) path() string {
	return filepath.Join(f.basePath, sessionFile)
}

// Current returns the stored session, if any. A corrupt session file reads as
// signed-out.
func (f *FileProvider) Current() (*Session, bool) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		return nil, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false
	}
	if strings.TrimSpace(s.User) == "" || strings.TrimSpace(s.Server) == "" {
		return nil, false
	}
	return &s, true
}

// SignIn persists the session. Local state is not migrated; the next load
// resets in-memory state to the remote document's content.
func (f *FileProvider) SignIn(s Session) error {
	if strings.TrimSpace(s.User) == "" {
		return errors.New("identity: user required")
	}
	if strings.TrimSpace(s.Server) == "" {
		return errors.New("identity: server required")
	}
	if err := os.MkdirAll(f.basePath, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(), data, 0o600)
}

// SignOut discards the session. Signing out never touches journal data.
func (f *FileProvider) SignOut() error {
	if err := os.Remove(f.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
