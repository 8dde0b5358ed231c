package store

import (
	"time"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
)

// Document is the per-user journal document shape shared by the remote
// persistence variant and the sync server. The generative-service API key is
// deliberately not part of it.
type Document struct {
	Entries          []*entry.Entry    `json:"entries"`
	CustomPersonas   []persona.Persona `json:"customPersonas"`
	SelectedPersonas []string          `json:"selectedPersonas"`
	HiddenPersonaIDs []string          `json:"hiddenPersonaIds"`
	PersonaOrder     []string          `json:"personaOrder"`
	CreatedAt        string            `json:"createdAt,omitempty"`
	UpdatedAt        string            `json:"updatedAt,omitempty"`
}

// NewDocument is the lazily-created initial document for a fresh user.
func NewDocument(now time.Time) *Document {
	stamp := entry.FormatTime(now)
	return &Document{
		Entries:          []*entry.Entry{},
		CustomPersonas:   []persona.Persona{},
		SelectedPersonas: persona.DefaultSelectedIDs(),
		HiddenPersonaIDs: []string{},
		PersonaOrder:     []string{},
		CreatedAt:        stamp,
		UpdatedAt:        stamp,
	}
}

// ToState projects a document into the sync layer's snapshot form. Documents
// always carry a selection, so the default-selection rule never applies to
// remote state.
func (d *Document) ToState() *State {
	return &State{
		Entries:        entry.Filter(d.Entries),
		CustomPersonas: persona.Filter(d.CustomPersonas),
		SelectedIDs:    d.SelectedPersonas,
		HiddenIDs:      d.HiddenPersonaIDs,
		Order:          d.PersonaOrder,
		HasSelection:   true,
	}
}
