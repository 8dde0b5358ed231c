package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/logging"
	"tableflip.dev/penpal/pkg/persona"
)

// Remote is the signed-in persistence variant. All collections live in one
// journal document on the sync server; every mutator patches only its own
// field, and the watch stream replaces local state with whatever snapshot the
// server pushes last. Concurrent edits from two devices overwrite each other
// by design.
type Remote struct {
	Server     string
	User       string
	Token      string
	HTTPClient *http.Client
}

// NewRemote builds the remote variant for an authenticated session.
func NewRemote(server, user, token string) *Remote {
	return &Remote{
		Server:     strings.TrimRight(server, "/"),
		User:       user,
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

func (r *Remote) journalURL(suffix string) string {
	return fmt.Sprintf("%s/v1/users/%s/journal%s", r.Server, r.User, suffix)
}

func (r *Remote) do(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.Token)
	return r.HTTPClient.Do(req)
}

// Load fetches the journal document, lazily creating one with default values
// for a brand-new user.
func (r *Remote) Load(ctx context.Context) (*State, error) {
	resp, err := r.do(ctx, http.MethodGet, r.journalURL(""), nil)
	if err != nil {
		return nil, fmt.Errorf("store: remote load: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var doc Document
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return nil, fmt.Errorf("store: remote load: decode document: %w", err)
		}
		return doc.ToState(), nil
	case http.StatusNotFound:
		return r.create(ctx)
	default:
		return nil, fmt.Errorf("store: remote load: status %d", resp.StatusCode)
	}
}

func (r *Remote) create(ctx context.Context) (*State, error) {
	doc := NewDocument(time.Now())
	resp, err := r.do(ctx, http.MethodPut, r.journalURL(""), doc)
	if err != nil {
		return nil, fmt.Errorf("store: remote create: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("store: remote create: status %d", resp.StatusCode)
	}
	return doc.ToState(), nil
}

// patch updates a single document field. Mutations of related fields are not
// transactional with each other; the registry's lookup-or-append order
// resolution absorbs the stale combinations a crash can leave behind.
func (r *Remote) patch(ctx context.Context, field string, value interface{}) error {
	resp, err := r.do(ctx, http.MethodPatch, r.journalURL(""), map[string]interface{}{field: value})
	if err != nil {
		return fmt.Errorf("store: remote patch %s: %w", field, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store: remote patch %s: status %d", field, resp.StatusCode)
	}
	return nil
}

func (r *Remote) SaveEntries(ctx context.Context, entries []*entry.Entry) error {
	return r.patch(ctx, "entries", entries)
}

func (r *Remote) SaveCustomPersonas(ctx context.Context, personas []persona.Persona) error {
	return r.patch(ctx, "customPersonas", personas)
}

func (r *Remote) SaveSelectedIDs(ctx context.Context, ids []string) error {
	return r.patch(ctx, "selectedPersonas", ids)
}

func (r *Remote) SaveHiddenIDs(ctx context.Context, ids []string) error {
	return r.patch(ctx, "hiddenPersonaIds", ids)
}

func (r *Remote) SaveOrder(ctx context.Context, ids []string) error {
	return r.patch(ctx, "personaOrder", ids)
}

// Erase deletes the remote journal document.
func (r *Remote) Erase(ctx context.Context) error {
	resp, err := r.do(ctx, http.MethodDelete, r.journalURL(""), nil)
	if err != nil {
		return fmt.Errorf("store: remote erase: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("store: remote erase: status %d", resp.StatusCode)
	}
	return nil
}

// Watch subscribes to the server's snapshot stream. Every frame is a full
// document; the channel closes when the stream ends or ctx is cancelled.
func (r *Remote) Watch(ctx context.Context) (<-chan *State, error) {
	resp, err := r.do(ctx, http.MethodGet, r.journalURL("/watch"), nil)
	if err != nil {
		return nil, fmt.Errorf("store: remote watch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("store: remote watch: status %d", resp.StatusCode)
	}

	snapshots := make(chan *State, 1)
	go func() {
		defer close(snapshots)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var doc Document
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &doc); err != nil {
				logging.Errorf(logging.CategorySync, "watch: bad frame: %v", err)
				continue
			}
			select {
			case snapshots <- doc.ToState():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			logging.Errorf(logging.CategorySync, "watch: stream ended: %v", err)
		}
	}()
	return snapshots, nil
}
