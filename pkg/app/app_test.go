package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/store"
)

type memoryPersistence struct {
	mu    sync.Mutex
	state store.State

	saveEntriesCalls int
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{}
}

func (m *memoryPersistence) Load(_ context.Context) (*store.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state
	return &st, nil
}

func (m *memoryPersistence) SaveEntries(_ context.Context, entries []*entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Entries = entries
	m.saveEntriesCalls++
	return nil
}

func (m *memoryPersistence) SaveCustomPersonas(_ context.Context, personas []persona.Persona) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.CustomPersonas = personas
	return nil
}

func (m *memoryPersistence) SaveSelectedIDs(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedIDs = ids
	m.state.HasSelection = true
	return nil
}

func (m *memoryPersistence) SaveHiddenIDs(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.HiddenIDs = ids
	return nil
}

func (m *memoryPersistence) SaveOrder(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Order = ids
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan *store.State, error) {
	ch := make(chan *store.State)
	close(ch)
	return ch, nil
}

func (m *memoryPersistence) Erase(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = store.State{}
	return nil
}

type fakeCommentary struct {
	comments []entry.Comment
	calls    int
}

func (f *fakeCommentary) Comments(_ context.Context, _, _ string, selected []string, _ []persona.Persona) []entry.Comment {
	f.calls++
	if f.comments != nil {
		return f.comments
	}
	out := make([]entry.Comment, 0, len(selected))
	for _, id := range selected {
		out = append(out, entry.Comment{PersonaID: id, Text: "comment for " + id})
	}
	return out
}

type fakeAnalysis struct {
	report *entry.Analysis
	err    error
}

func (f *fakeAnalysis) Analyze(_ context.Context, _, _ string) (*entry.Analysis, error) {
	return f.report, f.err
}

type staticKey string

func (k staticKey) APIKey() string { return string(k) }

func newTestService(p store.Persistence) *Service {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var tick int64
	return &Service{
		Persistence: p,
		Registry:    persona.NewRegistry(),
		Commentary:  &fakeCommentary{},
		Analysis:    &fakeAnalysis{},
		Credentials: staticKey("test-key"),
		Now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func TestSubmitPrependsEntry(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newTestService(mp)
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	first, err := svc.Submit(ctx, "今日は楽しかった")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Submit(ctx, "今日は疲れた")
	if err != nil {
		t.Fatal(err)
	}

	got := svc.Entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d", got[0].ID, got[1].ID)
	}
	if mp.saveEntriesCalls != 2 {
		t.Errorf("expected 2 persistence writes, got %d", mp.saveEntriesCalls)
	}
}

func TestSubmitClampsContent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	e, err := svc.Submit(ctx, strings.Repeat("あ", entry.MaxContentLen+1000))
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(e.Content)); n != entry.MaxContentLen {
		t.Errorf("submitted content rune len = %d, want %d", n, entry.MaxContentLen)
	}
	if got := svc.Entries(); len([]rune(got[0].Content)) != entry.MaxContentLen {
		t.Errorf("stored content rune len = %d, want %d", len([]rune(got[0].Content)), entry.MaxContentLen)
	}
}

func TestSubmitCommentsMatchDefaultSelection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	e, err := svc.Submit(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	want := persona.DefaultSelectedIDs()
	if len(e.Comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(e.Comments))
	}
	for i, c := range e.Comments {
		if c.PersonaID != want[i] {
			t.Errorf("comment %d: expected persona %q, got %q", i, want[i], c.PersonaID)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(ctx, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content: expected ErrEmptyContent, got %v", err)
	}

	svc.Credentials = staticKey("")
	if _, err := svc.Submit(ctx, "text"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("missing key: expected ErrNoAPIKey, got %v", err)
	}
	svc.Credentials = staticKey("test-key")

	for _, id := range persona.DefaultSelectedIDs() {
		svc.Registry.Deselect(id)
	}
	if _, err := svc.Submit(ctx, "text"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("empty selection: expected ErrNoSelection, got %v", err)
	}
}

func TestSubmitBusyGate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	svc.Commentary = commentaryFunc(func() []entry.Comment {
		close(started)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, "slow one")
		done <- err
	}()

	<-started
	if _, err := svc.Submit(ctx, "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy while in flight, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	svc.Commentary = &fakeCommentary{}
	if _, err := svc.Submit(ctx, "after"); err != nil {
		t.Errorf("gate did not clear: %v", err)
	}
}

type commentaryFunc func() []entry.Comment

func (f commentaryFunc) Comments(context.Context, string, string, []string, []persona.Persona) []entry.Comment {
	return f()
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	e, err := svc.Submit(ctx, "original")
	if err != nil {
		t.Fatal(err)
	}
	comments := len(e.Comments)

	updated, err := svc.Update(ctx, e.ID, "rewritten")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Content != "rewritten" {
		t.Errorf("content not replaced: %q", updated.Content)
	}
	if len(updated.Comments) != comments {
		t.Errorf("update must keep comments, had %d now %d", comments, len(updated.Comments))
	}

	if _, err := svc.Update(ctx, 42, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.Entries(); len(got) != 0 {
		t.Errorf("expected empty journal after delete, got %d", len(got))
	}
	if err := svc.Delete(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeAttachesAndRemoves(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}
	e, err := svc.Submit(ctx, "分析して")
	if err != nil {
		t.Fatal(err)
	}

	svc.Analysis = &fakeAnalysis{err: errors.New("down")}
	if _, err := svc.Analyze(ctx, e.ID); err == nil {
		t.Error("expected error when analysis is unavailable")
	}
	if got, _ := svc.Entry(e.ID); got.Analysis != nil {
		t.Error("failed analysis must leave the entry untouched")
	}

	svc.Analysis = &fakeAnalysis{report: &entry.Analysis{MoodScore: 72, Weather: "晴れ"}}
	got, err := svc.Analyze(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Analysis == nil || got.Analysis.MoodScore != 72 {
		t.Fatalf("analysis not attached: %+v", got.Analysis)
	}

	if _, err := svc.RemoveAnalysis(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := svc.Entry(e.ID); got.Analysis != nil {
		t.Error("analysis not removed")
	}
}

func TestPersonaOperationsPersist(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newTestService(mp)
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	added, err := svc.AddPersona(ctx, persona.Persona{Name: "ロボ", Role: "機械", Description: "感情のないロボット"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mp.state.CustomPersonas) != 1 {
		t.Fatalf("custom persona not persisted: %d", len(mp.state.CustomPersonas))
	}

	if err := svc.SelectPersona(ctx, added.ID); err != nil {
		t.Fatal(err)
	}
	if !containsID(mp.state.SelectedIDs, added.ID) {
		t.Error("selection not persisted")
	}

	if err := svc.TogglePersonaVisibility(ctx, added.ID); err != nil {
		t.Fatal(err)
	}
	if !containsID(mp.state.HiddenIDs, added.ID) {
		t.Error("hidden set not persisted")
	}
	if containsID(mp.state.SelectedIDs, added.ID) {
		t.Error("hiding must deselect")
	}

	if err := svc.RemovePersona(ctx, added.ID); err != nil {
		t.Fatal(err)
	}
	if len(mp.state.CustomPersonas) != 0 {
		t.Error("removal not persisted")
	}
}

func TestApplySnapshotReplacesState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit(ctx, "before snapshot"); err != nil {
		t.Fatal(err)
	}

	remote := entry.New("from another device", nil, time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC))
	svc.ApplySnapshot(&store.State{
		Entries:      []*entry.Entry{remote},
		SelectedIDs:  []string{"gal"},
		HasSelection: true,
	})

	got := svc.Entries()
	if len(got) != 1 || got[0].ID != remote.ID {
		t.Fatalf("snapshot did not replace journal: %+v", got)
	}
	sel := svc.Registry.SelectedIDs()
	if len(sel) != 1 || sel[0] != "gal" {
		t.Errorf("snapshot did not replace selection: %v", sel)
	}
}

// Watch snapshots can land while submissions are reading the persona
// roster from another goroutine, as happens in the interactive session.
// Run with -race.
func TestApplySnapshotDuringSubmit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryPersistence())
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 200; i++ {
			if _, err := svc.Submit(ctx, "race candidate"); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 200; i++ {
		svc.ApplySnapshot(&store.State{
			SelectedIDs:  []string{"teacher"},
			HasSelection: true,
		})
	}
	if err := <-done; err != nil {
		t.Fatalf("submission failed: %v", err)
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
