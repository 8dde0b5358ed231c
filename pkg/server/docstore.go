package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/store"
)

// ErrUnknownField rejects a patch for a field outside the document contract.
var ErrUnknownField = errors.New("server: unknown document field")

var validUser = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,64}$`)

// DocStore persists one journal document per user, plus issued session
// tokens, in a diskv tree. Reads and writes of a single document are
// serialized; that per-document write is the only atomicity the sync
// protocol promises.
type DocStore struct {
	d  *diskv.Diskv
	mu sync.Mutex
}

// NewDocStore opens the document store under basePath.
func NewDocStore(basePath string) *DocStore {
	return &DocStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024,
	})}
}

// ValidUser reports whether a user id is acceptable as a document key.
func ValidUser(user string) bool {
	return validUser.MatchString(user)
}

func journalKey(user string) string { return "journal-" + user }
func sessionKey(token string) string { return "session-" + token }

// Journal returns the user's document, or found=false when none exists.
func (s *DocStore) Journal(user string) (*store.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journalLocked(user)
}

func (s *DocStore) journalLocked(user string) (*store.Document, bool, error) {
	val, err := s.d.Read(journalKey(user))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var doc store.Document
	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, false, fmt.Errorf("server: corrupt document for %s: %w", user, err)
	}
	return &doc, true, nil
}

// PutJournal replaces the user's document wholesale.
func (s *DocStore) PutJournal(user string, doc *store.Document) (*store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := entry.FormatTime(time.Now())
	if doc.CreatedAt == "" {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return doc, s.writeLocked(user, doc)
}

// PatchJournal applies field-level updates to the user's document, creating a
// default document first when none exists. Unknown fields fail the whole
// patch.
func (s *DocStore) PatchJournal(user string, fields map[string]json.RawMessage) (*store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, found, err := s.journalLocked(user)
	if err != nil {
		return nil, err
	}
	if !found {
		doc = store.NewDocument(time.Now())
	}

	for name, raw := range fields {
		var err error
		switch name {
		case "entries":
			err = json.Unmarshal(raw, &doc.Entries)
		case "customPersonas":
			err = json.Unmarshal(raw, &doc.CustomPersonas)
		case "selectedPersonas":
			err = json.Unmarshal(raw, &doc.SelectedPersonas)
		case "hiddenPersonaIds":
			err = json.Unmarshal(raw, &doc.HiddenPersonaIDs)
		case "personaOrder":
			err = json.Unmarshal(raw, &doc.PersonaOrder)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if err != nil {
			return nil, fmt.Errorf("server: patch %s: %w", name, err)
		}
	}

	doc.UpdatedAt = entry.FormatTime(time.Now())
	return doc, s.writeLocked(user, doc)
}

// DeleteJournal erases the user's document.
func (s *DocStore) DeleteJournal(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.d.Erase(journalKey(user)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DocStore) writeLocked(user string, doc *store.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.d.Write(journalKey(user), data)
}

// SaveSession records an issued bearer token for a user.
func (s *DocStore) SaveSession(token, user string) error {
	return s.d.Write(sessionKey(token), []byte(user))
}

// UserForToken resolves a bearer token back to its user.
func (s *DocStore) UserForToken(token string) (string, bool) {
	val, err := s.d.Read(sessionKey(token))
	if err != nil {
		return "", false
	}
	return string(val), true
}
