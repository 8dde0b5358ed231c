package teaui

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/store"

	"github.com/charmbracelet/bubbles/v2/list"

	"tableflip.dev/penpal/pkg/app"
)

type nullStore struct{}

func (nullStore) Load(context.Context) (*store.State, error) { return &store.State{}, nil }
func (nullStore) SaveEntries(context.Context, []*entry.Entry) error {
	return nil
}
func (nullStore) SaveCustomPersonas(context.Context, []persona.Persona) error { return nil }
func (nullStore) SaveSelectedIDs(context.Context, []string) error             { return nil }
func (nullStore) SaveHiddenIDs(context.Context, []string) error               { return nil }
func (nullStore) SaveOrder(context.Context, []string) error                   { return nil }
func (nullStore) Watch(context.Context) (<-chan *store.State, error) {
	ch := make(chan *store.State)
	return ch, nil
}
func (nullStore) Erase(context.Context) error { return nil }

type silentCommentary struct{}

func (silentCommentary) Comments(_ context.Context, _, _ string, selected []string, _ []persona.Persona) []entry.Comment {
	out := make([]entry.Comment, 0, len(selected))
	for _, id := range selected {
		out = append(out, entry.Comment{PersonaID: id, Text: "..."})
	}
	return out
}

type silentAnalysis struct{}

func (silentAnalysis) Analyze(context.Context, string, string) (*entry.Analysis, error) {
	return &entry.Analysis{MoodScore: 50, Weather: "不明"}, nil
}

type silentKey struct{}

func (silentKey) APIKey() string { return "k" }

func testModel(t *testing.T) Model {
	t.Helper()
	svc := &app.Service{
		Persistence: nullStore{},
		Registry:    persona.NewRegistry(),
		Commentary:  silentCommentary{},
		Analysis:    silentAnalysis{},
		Credentials: silentKey{},
		Now:         func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) },
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return New(svc, nil)
}

func TestViewEmptyJournal(t *testing.T) {
	m := testModel(t)
	view := m.View()
	if !strings.Contains(view, "no entries yet") {
		t.Errorf("empty journal hint missing from view:\n%s", view)
	}
	if !strings.Contains(view, "[NORMAL]") {
		t.Errorf("mode indicator missing from view:\n%s", view)
	}
}

func TestDetailRendersCommentsAndReport(t *testing.T) {
	m := testModel(t)

	e, err := m.svc.Submit(context.Background(), "今日は映画を見た")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.svc.Analyze(context.Background(), e.ID); err != nil {
		t.Fatal(err)
	}
	m.entList.SetItems([]list.Item{entryItem{e: e}})
	m.entList.Select(0)

	detail := m.detail()
	if !strings.Contains(detail, "今日は映画を見た") {
		t.Errorf("content missing from detail:\n%s", detail)
	}
	for _, id := range persona.DefaultSelectedIDs() {
		p, ok := m.svc.FindPersona(id)
		if !ok {
			t.Fatalf("builtin persona %s not found", id)
		}
		if !strings.Contains(detail, p.Name) {
			t.Errorf("comment from %s missing from detail:\n%s", p.Name, detail)
		}
	}
	if !strings.Contains(detail, "気分スコア: 50") {
		t.Errorf("mood report missing from detail:\n%s", detail)
	}
}

func TestEntryItemTitleTruncates(t *testing.T) {
	long := strings.Repeat("あ", 60)
	e := entry.New(long, []entry.Comment{}, time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC))
	it := entryItem{e: e}
	title := it.Title()
	if strings.Contains(title, long) {
		t.Errorf("expected title to truncate long content: %q", title)
	}
	if !strings.Contains(title, e.Date) {
		t.Errorf("expected title to include the date: %q", title)
	}
}
