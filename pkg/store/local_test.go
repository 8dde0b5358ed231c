package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }
func (c *testConfig) Debug() bool      { return false }

func newLocal(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return p
}

func sampleEntry(id int64) *entry.Entry {
	return &entry.Entry{
		ID:       id,
		Date:     "2026年8月29日 土曜日",
		Content:  "今日の日記",
		Comments: []entry.Comment{{PersonaID: "teacher", Text: "よい一日ですね。"}},
	}
}

func TestSaveBeforeLoadRefused(t *testing.T) {
	p := newLocal(t)
	ctx := context.Background()

	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(1)}); err != ErrNotLoaded {
		t.Errorf("SaveEntries before Load err = %v, want ErrNotLoaded", err)
	}
	if err := p.SaveSelectedIDs(ctx, []string{"teacher"}); err != ErrNotLoaded {
		t.Errorf("SaveSelectedIDs before Load err = %v, want ErrNotLoaded", err)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p, err := Load(&testConfig{path: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	state, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("initial Load error = %v", err)
	}
	if len(state.Entries) != 0 || state.HasSelection {
		t.Fatalf("fresh state = %+v, want empty without selection", state)
	}

	e := sampleEntry(1700000000000)
	e.Analysis = &entry.Analysis{MoodScore: 70, Weather: "晴れ"}
	if err := p.SaveEntries(ctx, []*entry.Entry{e}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}
	custom := persona.Persona{ID: "custom-1", Name: "ロボ", Role: "機械", Description: "無口"}
	if err := p.SaveCustomPersonas(ctx, []persona.Persona{custom}); err != nil {
		t.Fatalf("SaveCustomPersonas() error = %v", err)
	}
	if err := p.SaveSelectedIDs(ctx, []string{"lover"}); err != nil {
		t.Fatalf("SaveSelectedIDs() error = %v", err)
	}
	if err := p.SaveHiddenIDs(ctx, []string{"celeb"}); err != nil {
		t.Fatalf("SaveHiddenIDs() error = %v", err)
	}
	if err := p.SaveOrder(ctx, []string{"lover", "teacher"}); err != nil {
		t.Fatalf("SaveOrder() error = %v", err)
	}

	// A second instance over the same directory sees everything.
	q, err := Load(&testConfig{path: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := q.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].ID != e.ID {
		t.Fatalf("Entries = %+v", got.Entries)
	}
	if got.Entries[0].Analysis == nil || got.Entries[0].Analysis.Weather != "晴れ" {
		t.Errorf("Analysis = %+v", got.Entries[0].Analysis)
	}
	if len(got.CustomPersonas) != 1 || got.CustomPersonas[0].ID != "custom-1" {
		t.Errorf("CustomPersonas = %+v", got.CustomPersonas)
	}
	if !got.HasSelection || len(got.SelectedIDs) != 1 || got.SelectedIDs[0] != "lover" {
		t.Errorf("SelectedIDs = %v hasSelection=%v", got.SelectedIDs, got.HasSelection)
	}
	if len(got.HiddenIDs) != 1 || got.HiddenIDs[0] != "celeb" {
		t.Errorf("HiddenIDs = %v", got.HiddenIDs)
	}
	if len(got.Order) != 2 {
		t.Errorf("Order = %v", got.Order)
	}
}

func TestEmptySelectionIsRemembered(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p, _ := Load(&testConfig{path: dir})
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if err := p.SaveSelectedIDs(ctx, []string{}); err != nil {
		t.Fatalf("SaveSelectedIDs() error = %v", err)
	}

	q, _ := Load(&testConfig{path: dir})
	got, err := q.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !got.HasSelection {
		t.Error("deliberately empty selection lost on reload")
	}
	if len(got.SelectedIDs) != 0 {
		t.Errorf("SelectedIDs = %v, want empty", got.SelectedIDs)
	}
}

func TestCorruptKeyErasedOnLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "entries"), []byte("{{{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt key: %v", err)
	}

	p, _ := Load(&testConfig{path: dir})
	state, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load over corrupt key error = %v", err)
	}
	if len(state.Entries) != 0 {
		t.Errorf("Entries = %+v, want none", state.Entries)
	}
	if _, err := os.Stat(filepath.Join(dir, "entries")); !os.IsNotExist(err) {
		t.Error("corrupt key should have been erased")
	}
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p, _ := Load(&testConfig{path: dir})
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	bad := &entry.Entry{ID: 0, Date: "", Content: "broken"}
	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(5), bad}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	q, _ := Load(&testConfig{path: dir})
	got, err := q.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].ID != 5 {
		t.Errorf("Entries = %+v, want only id 5", got.Entries)
	}
}

func TestErase(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p, _ := Load(&testConfig{path: dir})
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(9)}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}
	if err := p.Erase(ctx); err != nil {
		t.Fatalf("Erase() error = %v", err)
	}

	q, _ := Load(&testConfig{path: dir})
	got, err := q.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(got.Entries) != 0 || got.HasSelection {
		t.Errorf("state after erase = %+v, want empty", got)
	}

	// Erasing an already-empty store is fine.
	if err := p.Erase(ctx); err != nil {
		t.Errorf("second Erase() error = %v", err)
	}
}

func TestWatchEmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, _ := Load(&testConfig{path: dir})
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	snapshots, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(42)}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	select {
	case state := <-snapshots:
		if len(state.Entries) != 1 || state.Entries[0].ID != 42 {
			t.Errorf("snapshot entries = %+v", state.Entries)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after write")
	}

	cancel()
	select {
	case _, ok := <-snapshots:
		if ok {
			// A final queued snapshot may arrive; the channel must still
			// close after it.
			if _, ok := <-snapshots; ok {
				t.Error("snapshot channel still open after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot channel not closed after cancel")
	}
}

// When the consumer lags across several write bursts, the snapshot it finally
// reads must reflect the most recent write, not the first unconsumed one.
func TestWatchLatestSnapshotWins(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, _ := Load(&testConfig{path: dir})
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	snapshots, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(1)}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}
	// Let the first reload queue its snapshot without consuming it.
	time.Sleep(400 * time.Millisecond)

	if err := p.SaveEntries(ctx, []*entry.Entry{sampleEntry(1), sampleEntry(2)}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}
	time.Sleep(400 * time.Millisecond)

	select {
	case state := <-snapshots:
		if len(state.Entries) != 2 {
			t.Errorf("lagging consumer saw %d entries, want 2", len(state.Entries))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after writes")
	}
}
