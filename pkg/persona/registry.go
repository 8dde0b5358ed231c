package persona

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrMissingFields rejects a custom persona with an empty required field.
var ErrMissingFields = errors.New("persona: name, role, and description are required")

// Direction moves a persona within the display order.
type Direction int

const (
	Up Direction = iota
	Down
)

// Registry owns the combined built-in + custom roster plus the selection,
// visibility, and ordering state around it. The caller persists the pieces it
// reports as changed. Safe for concurrent use: a watch snapshot can restore
// state while a submission is reading the roster.
type Registry struct {
	mu       sync.Mutex
	builtins []Persona
	customs  []Persona
	selected []string
	hidden   []string
	order    []string
}

// NewRegistry starts from the built-in cast with the default selection.
func NewRegistry() *Registry {
	return &Registry{
		builtins: Builtins(),
		selected: DefaultSelectedIDs(),
	}
}

// Restore replaces the mutable state wholesale, as happens on initial load
// and on every remote snapshot. hasSelection distinguishes "never selected
// anything" (default applies) from a deliberately empty selection.
func (r *Registry) Restore(customs []Persona, selected, hidden, order []string, hasSelection bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customs = append([]Persona(nil), Filter(customs)...)
	if hasSelection {
		r.selected = append([]string(nil), selected...)
	} else {
		r.selected = DefaultSelectedIDs()
	}
	r.hidden = append([]string(nil), hidden...)
	r.order = append([]string(nil), order...)
}

// Customs returns the user-created personas in creation order.
func (r *Registry) Customs() []Persona {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Persona(nil), r.customs...)
}

// SelectedIDs returns the working selection for the next submission.
func (r *Registry) SelectedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.selected...)
}

// HiddenIDs returns the ids excluded from the selectable list.
func (r *Registry) HiddenIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hidden...)
}

// Order returns the explicit display order, which may be partial or contain
// stale ids.
func (r *Registry) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// encounterLocked is built-ins first, then customs in creation order.
func (r *Registry) encounterLocked() []Persona {
	all := make([]Persona, 0, len(r.builtins)+len(r.customs))
	all = append(all, r.builtins...)
	all = append(all, r.customs...)
	return all
}

// ListAll resolves the effective display order: explicitly ordered ids first
// (unresolvable ids dropped), then every persona absent from the order
// appended in encounter order. An empty order is encounter order directly.
func (r *Registry) ListAll() []Persona {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listAllLocked()
}

func (r *Registry) listAllLocked() []Persona {
	raw := r.encounterLocked()
	if len(r.order) == 0 {
		return raw
	}

	byID := make(map[string]Persona, len(raw))
	for _, p := range raw {
		byID[p.ID] = p
	}
	ordered := make(map[string]bool, len(r.order))

	out := make([]Persona, 0, len(raw))
	for _, id := range r.order {
		if p, ok := byID[id]; ok && !ordered[id] {
			out = append(out, p)
			ordered[id] = true
		}
	}
	for _, p := range raw {
		if !ordered[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// ListVisible is ListAll minus the hidden set. This is the composer's
// selectable list; historical comments render from the full roster.
func (r *Registry) ListVisible() []Persona {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listVisibleLocked()
}

func (r *Registry) listVisibleLocked() []Persona {
	hidden := make(map[string]bool, len(r.hidden))
	for _, id := range r.hidden {
		hidden[id] = true
	}
	out := make([]Persona, 0)
	for _, p := range r.listAllLocked() {
		if !hidden[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Find resolves an id against the full roster.
func (r *Registry) Find(id string) (Persona, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id)
}

func (r *Registry) findLocked(id string) (Persona, bool) {
	for _, p := range r.encounterLocked() {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}

// Add validates, sanitizes, and appends a custom persona, assigning a fresh
// unique id. The candidate's ID and Builtin fields are ignored.
func (r *Registry) Add(candidate Persona, now time.Time) (Persona, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := Sanitize(candidate)
	if p.Name == "" || p.Role == "" || p.Description == "" {
		return Persona{}, ErrMissingFields
	}
	p.ID = NewID(now, func(id string) bool {
		_, exists := r.findLocked(id)
		return exists
	})
	p.Builtin = false
	if p.Icon == "" {
		p.Icon = "grin"
	}
	r.customs = append(r.customs, p)
	return p, nil
}

// Remove deletes a custom persona, cascading to the selection and the order.
// Built-in ids and unknown ids are a no-op. Historical entry comments keep
// referencing the id; renderers simply stop resolving it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, p := range r.customs {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	r.customs = append(r.customs[:idx], r.customs[idx+1:]...)
	r.selected = without(r.selected, id)
	r.order = without(r.order, id)
}

// ToggleVisibility flips the hidden flag for id. Hiding a persona also
// deselects it.
func (r *Registry) ToggleVisibility(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contains(r.hidden, id) {
		r.hidden = without(r.hidden, id)
		return
	}
	r.hidden = append(r.hidden, id)
	r.selected = without(r.selected, id)
}

// Select adds id to the working selection. Only visible personas are
// selectable.
func (r *Registry) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.listVisibleLocked() {
		if p.ID == id {
			if !contains(r.selected, id) {
				r.selected = append(r.selected, id)
			}
			return nil
		}
	}
	return fmt.Errorf("persona: %q is not selectable", id)
}

// Deselect removes id from the working selection.
func (r *Registry) Deselect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = without(r.selected, id)
}

// Reorder replaces the display order wholesale. The sequence is not required
// to be a permutation; extra ids are dropped and missing ids appended when
// the order is resolved by ListAll.
func (r *Registry) Reorder(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append([]string(nil), ids...)
}

// Move swaps id with its neighbor in the effective current order. At either
// boundary it is a no-op. The effective order becomes the explicit order.
func (r *Registry) Move(id string, dir Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.order
	if len(current) == 0 {
		for _, p := range r.encounterLocked() {
			current = append(current, p.ID)
		}
	}
	idx := -1
	for i, v := range current {
		if v == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	j := idx + 1
	if dir == Up {
		j = idx - 1
	}
	if j < 0 || j >= len(current) {
		return
	}
	next := append([]string(nil), current...)
	next[idx], next[j] = next[j], next[idx]
	r.order = next
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
