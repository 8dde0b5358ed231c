package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/store"
)

// Service provides high-level operations over the journal and the persona
// registry. It wraps persistence and the generation clients so CLIs and the
// MCP surface can share logic.
type Service struct {
	Persistence store.Persistence
	Registry    *persona.Registry
	Commentary  CommentaryClient
	Analysis    AnalysisClient
	Credentials Credentials
	Now         func() time.Time

	mu      sync.Mutex
	entries []*entry.Entry
	busy    bool
}

var (
	ErrEmptyContent = errors.New("app: entry content is empty")
	ErrNoSelection  = errors.New("app: no personas selected")
	ErrNoAPIKey     = errors.New("app: no API key configured")
	ErrBusy         = errors.New("app: a submission is already in flight")
	ErrNotFound     = errors.New("app: entry not found")
)

// CommentaryClient produces one comment per selected persona. It never fails;
// unavailable personas get fallback text instead.
type CommentaryClient interface {
	Comments(ctx context.Context, apiKey, text string, selectedIDs []string, catalog []persona.Persona) []entry.Comment
}

// AnalysisClient produces a mood report, or reports it unavailable.
type AnalysisClient interface {
	Analyze(ctx context.Context, apiKey, text string) (*entry.Analysis, error)
}

// Credentials supplies the API key at call time so a key set mid-session is
// picked up without a restart.
type Credentials interface {
	APIKey() string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load pulls the full state from persistence and replaces the in-memory
// journal and registry contents.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	state, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	s.ApplySnapshot(state)
	return nil
}

// ApplySnapshot replaces all in-memory state wholesale. Watch consumers call
// this for every snapshot; the latest one wins.
func (s *Service) ApplySnapshot(state *store.State) {
	if state == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = state.Entries
	if s.Registry != nil {
		s.Registry.Restore(state.CustomPersonas, state.SelectedIDs, state.HiddenIDs, state.Order, state.HasSelection)
	}
}

// Entries returns the journal, newest first.
func (s *Service) Entries() []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry finds one entry by id.
func (s *Service) Entry(id int64) (*entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Submit writes a diary entry: it gathers one comment per selected persona
// and prepends the finished entry to the journal. Only one submission may be
// in flight at a time.
func (s *Service) Submit(ctx context.Context, content string) (*entry.Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	content = entry.Truncate(content, entry.MaxContentLen)
	selected := s.Registry.SelectedIDs()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	apiKey := s.apiKey()
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	comments := s.Commentary.Comments(ctx, apiKey, content, selected, s.Registry.ListAll())
	e := entry.New(content, comments, s.now())

	s.mu.Lock()
	s.entries = append([]*entry.Entry{e}, s.entries...)
	entries := s.snapshotLocked()
	s.mu.Unlock()

	return e, s.Persistence.SaveEntries(ctx, entries)
}

// Update replaces the content of an existing entry. Comments and any analysis
// are kept as written.
func (s *Service) Update(ctx context.Context, id int64, content string) (*entry.Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	s.mu.Lock()
	var target *entry.Entry
	for _, e := range s.entries {
		if e.ID == id {
			target = e
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	target.Content = entry.Truncate(content, entry.MaxContentLen)
	entries := s.snapshotLocked()
	s.mu.Unlock()

	return target, s.Persistence.SaveEntries(ctx, entries)
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	kept := make([]*entry.Entry, 0, len(s.entries))
	found := false
	for _, e := range s.entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.entries = kept
	entries := s.snapshotLocked()
	s.mu.Unlock()

	return s.Persistence.SaveEntries(ctx, entries)
}

// Analyze attaches a mood report to the entry. Analysis has no fallback: when
// the model is unreachable the entry is left untouched and the error is
// returned.
func (s *Service) Analyze(ctx context.Context, id int64) (*entry.Entry, error) {
	apiKey := s.apiKey()
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	target, ok := s.Entry(id)
	if !ok {
		return nil, ErrNotFound
	}
	report, err := s.Analysis.Analyze(ctx, apiKey, target.Content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	target.Analysis = report
	entries := s.snapshotLocked()
	s.mu.Unlock()

	return target, s.Persistence.SaveEntries(ctx, entries)
}

// RemoveAnalysis clears a previously attached mood report.
func (s *Service) RemoveAnalysis(ctx context.Context, id int64) (*entry.Entry, error) {
	target, ok := s.Entry(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	target.Analysis = nil
	entries := s.snapshotLocked()
	s.mu.Unlock()

	return target, s.Persistence.SaveEntries(ctx, entries)
}

// ReplaceEntries swaps the whole journal, validating record by record. Import
// uses this.
func (s *Service) ReplaceEntries(ctx context.Context, entries []*entry.Entry) error {
	filtered := entry.Filter(entries)
	s.mu.Lock()
	s.entries = filtered
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	return s.Persistence.SaveEntries(ctx, snapshot)
}

// Erase destroys every synchronized collection and resets in-memory state to
// defaults.
func (s *Service) Erase(ctx context.Context) error {
	if err := s.Persistence.Erase(ctx); err != nil {
		return err
	}
	s.ApplySnapshot(&store.State{})
	return nil
}

// Watch subscribes to persistence snapshots.
func (s *Service) Watch(ctx context.Context) (<-chan *store.State, error) {
	return s.Persistence.Watch(ctx)
}

func (s *Service) apiKey() string {
	if s.Credentials == nil {
		return ""
	}
	return s.Credentials.APIKey()
}

func (s *Service) snapshotLocked() []*entry.Entry {
	out := make([]*entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// AddPersona registers a custom persona and persists the roster.
func (s *Service) AddPersona(ctx context.Context, candidate persona.Persona) (persona.Persona, error) {
	added, err := s.Registry.Add(candidate, s.now())
	if err != nil {
		return persona.Persona{}, err
	}
	if err := s.Persistence.SaveCustomPersonas(ctx, s.Registry.Customs()); err != nil {
		return added, err
	}
	return added, s.Persistence.SaveOrder(ctx, s.Registry.Order())
}

// RemovePersona deletes a custom persona. Builtins are left alone.
func (s *Service) RemovePersona(ctx context.Context, id string) error {
	s.Registry.Remove(id)
	if err := s.Persistence.SaveCustomPersonas(ctx, s.Registry.Customs()); err != nil {
		return err
	}
	if err := s.Persistence.SaveSelectedIDs(ctx, s.Registry.SelectedIDs()); err != nil {
		return err
	}
	return s.Persistence.SaveOrder(ctx, s.Registry.Order())
}

// TogglePersonaVisibility hides or reveals a persona. Hiding deselects.
func (s *Service) TogglePersonaVisibility(ctx context.Context, id string) error {
	s.Registry.ToggleVisibility(id)
	if err := s.Persistence.SaveHiddenIDs(ctx, s.Registry.HiddenIDs()); err != nil {
		return err
	}
	return s.Persistence.SaveSelectedIDs(ctx, s.Registry.SelectedIDs())
}

// SelectPersona adds a visible persona to the commentary selection.
func (s *Service) SelectPersona(ctx context.Context, id string) error {
	if err := s.Registry.Select(id); err != nil {
		return err
	}
	return s.Persistence.SaveSelectedIDs(ctx, s.Registry.SelectedIDs())
}

// DeselectPersona drops a persona from the commentary selection.
func (s *Service) DeselectPersona(ctx context.Context, id string) error {
	s.Registry.Deselect(id)
	return s.Persistence.SaveSelectedIDs(ctx, s.Registry.SelectedIDs())
}

// MovePersona shifts a persona one step in the display order.
func (s *Service) MovePersona(ctx context.Context, id string, dir persona.Direction) error {
	s.Registry.Move(id, dir)
	return s.Persistence.SaveOrder(ctx, s.Registry.Order())
}

// ReorderPersonas replaces the display order wholesale.
func (s *Service) ReorderPersonas(ctx context.Context, ids []string) error {
	s.Registry.Reorder(ids)
	return s.Persistence.SaveOrder(ctx, s.Registry.Order())
}

// FindPersona resolves an id against the full roster.
func (s *Service) FindPersona(id string) (persona.Persona, bool) {
	return s.Registry.Find(id)
}

// DescribeEntry renders a short one-line summary, for logs and MCP listings.
func DescribeEntry(e *entry.Entry) string {
	return fmt.Sprintf("%d %s %s", e.ID, e.Date, entry.Truncate(e.Content, 40))
}
