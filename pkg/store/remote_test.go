package store_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
	"tableflip.dev/penpal/pkg/server"
	"tableflip.dev/penpal/pkg/store"
)

// remoteFixture spins up a real sync server and an authenticated remote
// variant pointed at it.
func remoteFixture(t *testing.T) *store.Remote {
	t.Helper()
	srv := httptest.NewServer(server.New(t.TempDir()).Router())
	t.Cleanup(srv.Close)

	body, _ := json.Marshal(map[string]string{"user": "alice"})
	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	return store.NewRemote(srv.URL, "alice", session.Token)
}

func TestRemoteLoadCreatesDefaultDocument(t *testing.T) {
	r := remoteFixture(t)
	ctx := context.Background()

	state, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(state.Entries) != 0 {
		t.Errorf("Entries = %+v, want none", state.Entries)
	}
	if !state.HasSelection {
		t.Error("remote state must always carry a selection")
	}
	want := persona.DefaultSelectedIDs()
	if len(state.SelectedIDs) != len(want) || state.SelectedIDs[0] != want[0] {
		t.Errorf("SelectedIDs = %v, want %v", state.SelectedIDs, want)
	}
}

func TestRemoteSaveAndReload(t *testing.T) {
	r := remoteFixture(t)
	ctx := context.Background()

	if _, err := r.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	e := &entry.Entry{
		ID: 1700000000000, Date: "2026年8月29日", Content: "リモート同期",
		Comments: []entry.Comment{{PersonaID: "friend", Text: "いいね！"}},
	}
	if err := r.SaveEntries(ctx, []*entry.Entry{e}); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}
	if err := r.SaveSelectedIDs(ctx, []string{"isekai"}); err != nil {
		t.Fatalf("SaveSelectedIDs() error = %v", err)
	}
	if err := r.SaveCustomPersonas(ctx, []persona.Persona{{ID: "custom-1", Name: "ロボ", Role: "機械"}}); err != nil {
		t.Fatalf("SaveCustomPersonas() error = %v", err)
	}

	state, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(state.Entries) != 1 || state.Entries[0].Content != "リモート同期" {
		t.Errorf("Entries = %+v", state.Entries)
	}
	if len(state.SelectedIDs) != 1 || state.SelectedIDs[0] != "isekai" {
		t.Errorf("SelectedIDs = %v", state.SelectedIDs)
	}
	if len(state.CustomPersonas) != 1 || state.CustomPersonas[0].ID != "custom-1" {
		t.Errorf("CustomPersonas = %+v", state.CustomPersonas)
	}
}

func TestRemoteErase(t *testing.T) {
	r := remoteFixture(t)
	ctx := context.Background()

	if _, err := r.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := r.SaveOrder(ctx, []string{"friend"}); err != nil {
		t.Fatalf("SaveOrder() error = %v", err)
	}
	if err := r.Erase(ctx); err != nil {
		t.Fatalf("Erase() error = %v", err)
	}

	// Load after erase creates a fresh default document again.
	state, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after erase error = %v", err)
	}
	if len(state.Order) != 0 {
		t.Errorf("Order = %v, want empty after erase", state.Order)
	}
}

func TestRemoteWatch(t *testing.T) {
	r := remoteFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := r.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	snapshots, err := r.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Initial snapshot arrives first.
	select {
	case state := <-snapshots:
		if !state.HasSelection {
			t.Error("snapshot without selection flag")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	if err := r.SaveHiddenIDs(ctx, []string{"celeb"}); err != nil {
		t.Fatalf("SaveHiddenIDs() error = %v", err)
	}

	select {
	case state := <-snapshots:
		if len(state.HiddenIDs) != 1 || state.HiddenIDs[0] != "celeb" {
			t.Errorf("snapshot HiddenIDs = %v", state.HiddenIDs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after save")
	}
}
