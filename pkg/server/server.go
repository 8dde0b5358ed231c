// Package server implements the sync server the remote persistence variant
// talks to: one journal document per user, field-level patches, and a
// server-sent-events stream that pushes the full document on every change.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tableflip.dev/penpal/pkg/logging"
	"tableflip.dev/penpal/pkg/store"
)

// Server wires the document store and the watch hub behind a chi router.
type Server struct {
	store *DocStore
	hub   *hub
}

// New builds a server persisting documents under basePath.
func New(basePath string) *Server {
	return &Server{store: NewDocStore(basePath), hub: newHub()}
}

// Router assembles the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/v1/sessions", s.createSession)

	r.Route("/v1/users/{user}/journal", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.getJournal)
		r.Put("/", s.putJournal)
		r.Patch("/", s.patchJournal)
		r.Delete("/", s.deleteJournal)
		r.Get("/watch", s.watchJournal)
	})

	return r
}

// createSession issues a bearer token for a user id. There is no password:
// the authentication provider proper is an external collaborator, and the
// token is the identity as far as this server is concerned.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User string `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	user := strings.TrimSpace(body.User)
	if !ValidUser(user) {
		http.Error(w, "invalid user", http.StatusBadRequest)
		return
	}

	token := uuid.New().String()
	if err := s.store.SaveSession(token, user); err != nil {
		logging.Errorf(logging.CategoryServer, "save session: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	logging.Debugf(logging.CategoryServer, "session issued for %s", user)
	writeJSON(w, map[string]string{"user": user, "token": token})
}

// authenticate maps the bearer token to a user and requires it to match the
// path user.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, ok := s.store.UserForToken(token)
		if !ok || user != chi.URLParam(r, "user") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getJournal(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	doc, found, err := s.store.Journal(user)
	if err != nil {
		logging.Errorf(logging.CategoryServer, "get journal %s: %v", user, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, doc)
}

func (s *Server) putJournal(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	var doc store.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid document", http.StatusBadRequest)
		return
	}
	saved, err := s.store.PutJournal(user, &doc)
	if err != nil {
		logging.Errorf(logging.CategoryServer, "put journal %s: %v", user, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.notify(user, saved)
	writeJSON(w, saved)
}

func (s *Server) patchJournal(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid patch", http.StatusBadRequest)
		return
	}
	doc, err := s.store.PatchJournal(user, fields)
	if err != nil {
		if errors.Is(err, ErrUnknownField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.Errorf(logging.CategoryServer, "patch journal %s: %v", user, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.notify(user, doc)
	writeJSON(w, doc)
}

func (s *Server) deleteJournal(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	if err := s.store.DeleteJournal(user); err != nil {
		logging.Errorf(logging.CategoryServer, "delete journal %s: %v", user, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// watchJournal streams full document snapshots as server-sent events. The
// current document, when one exists, is sent immediately so a fresh
// subscriber starts from the latest state.
func (s *Server) watchJournal(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	user := chi.URLParam(r, "user")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	ch := s.hub.subscribe(user)
	defer s.hub.unsubscribe(user, ch)

	if doc, found, err := s.store.Journal(user); err == nil && found {
		if payload, err := json.Marshal(doc); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (s *Server) notify(user string, doc *store.Document) {
	payload, err := json.Marshal(doc)
	if err != nil {
		logging.Errorf(logging.CategoryServer, "notify %s: %v", user, err)
		return
	}
	s.hub.broadcast(user, payload)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf(logging.CategoryServer, "write response: %v", err)
	}
}
