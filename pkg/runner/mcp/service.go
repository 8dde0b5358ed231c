// Package mcp provides the Model Context Protocol server integration for the
// journal.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
)

// Service adapts app operations into transport-friendly projections shared by
// the MCP tools and resources.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when an entry cannot be located.
var ErrEntryNotFound = errors.New("entry not found")

// CommentDTO is one persona reply with the persona resolved for display.
type CommentDTO struct {
	PersonaID   string `json:"personaId"`
	PersonaName string `json:"personaName,omitempty"`
	Text        string `json:"text"`
}

// AnalysisDTO mirrors the mood report fields.
type AnalysisDTO struct {
	MoodScore      int    `json:"moodScore"`
	Weather        string `json:"weather"`
	HiddenEmotions string `json:"hiddenEmotions,omitempty"`
	LuckyAction    string `json:"luckyAction,omitempty"`
	DeepAdvice     string `json:"deepAdvice,omitempty"`
}

// EntryDTO is a transport-friendly projection of a diary entry.
type EntryDTO struct {
	ID       int64        `json:"id"`
	Date     string       `json:"date"`
	Created  string       `json:"created"`
	Content  string       `json:"content"`
	Comments []CommentDTO `json:"comments"`
	Analysis *AnalysisDTO `json:"analysis,omitempty"`
}

// PersonaDTO describes one roster member with its working state.
type PersonaDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Builtin     bool   `json:"builtin"`
	Selected    bool   `json:"selected"`
	Hidden      bool   `json:"hidden"`
}

// NewService builds a service wrapper over the app layer.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListEntries returns the whole journal, newest first.
func (s *Service) ListEntries(ctx context.Context) ([]EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	return s.toDTOs(s.App.Entries()), nil
}

// EntryByID locates an entry and returns its projection.
func (s *Service) EntryByID(ctx context.Context, id int64) (*EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	e, ok := s.App.Entry(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	dto := s.toDTO(e)
	return &dto, nil
}

// WriteEntry runs the full submission pipeline: commentary from every
// selected persona, then persistence.
func (s *Service) WriteEntry(ctx context.Context, content string) (*EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	e, err := s.App.Submit(ctx, content)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry permanently. MCP callers confirm on their
// side; there is no interactive prompt here.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	if s.App == nil {
		return errors.New("app service is not configured")
	}
	err := s.App.Delete(ctx, id)
	if errors.Is(err, app.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	return err
}

// SearchEntries performs a substring match across entry content and comments.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	results := make([]EntryDTO, 0, limit)
	for _, e := range s.App.Entries() {
		if len(results) >= limit {
			break
		}
		if entryMatches(e, q) {
			results = append(results, s.toDTO(e))
		}
	}
	return results, nil
}

// ListPersonas returns the full roster with selection and visibility state.
func (s *Service) ListPersonas(ctx context.Context) ([]PersonaDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	r := s.App.Registry
	selected := r.SelectedIDs()
	hidden := r.HiddenIDs()

	roster := r.ListAll()
	out := make([]PersonaDTO, 0, len(roster))
	for _, p := range roster {
		out = append(out, PersonaDTO{
			ID:          p.ID,
			Name:        p.Name,
			Role:        p.Role,
			Icon:        p.Icon,
			Color:       p.Color.ID(),
			Description: p.Description,
			Builtin:     p.Builtin,
			Selected:    containsID(selected, p.ID),
			Hidden:      containsID(hidden, p.ID),
		})
	}
	return out, nil
}

// AddPersona registers a custom persona.
func (s *Service) AddPersona(ctx context.Context, candidate persona.Persona) (*PersonaDTO, error) {
	if s.App == nil {
		return nil, errors.New("app service is not configured")
	}
	added, err := s.App.AddPersona(ctx, candidate)
	if err != nil {
		return nil, err
	}
	dto := PersonaDTO{
		ID:          added.ID,
		Name:        added.Name,
		Role:        added.Role,
		Icon:        added.Icon,
		Color:       added.Color.ID(),
		Description: added.Description,
	}
	return &dto, nil
}

func entryMatches(e *entry.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, c := range e.Comments {
		if strings.Contains(strings.ToLower(c.Text), q) {
			return true
		}
	}
	return false
}

func (s *Service) toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.toDTO(e))
	}
	return out
}

func (s *Service) toDTO(e *entry.Entry) EntryDTO {
	comments := make([]CommentDTO, 0, len(e.Comments))
	for _, c := range e.Comments {
		dto := CommentDTO{PersonaID: c.PersonaID, Text: c.Text}
		if p, ok := s.App.FindPersona(c.PersonaID); ok {
			dto.PersonaName = p.Name
		}
		comments = append(comments, dto)
	}

	dto := EntryDTO{
		ID:       e.ID,
		Date:     e.Date,
		Created:  entry.FormatTime(e.CreatedAt()),
		Content:  e.Content,
		Comments: comments,
	}
	if e.Analysis != nil {
		dto.Analysis = &AnalysisDTO{
			MoodScore:      e.Analysis.MoodScore,
			Weather:        e.Analysis.Weather,
			HiddenEmotions: e.Analysis.HiddenEmotions,
			LuckyAction:    e.Analysis.LuckyAction,
			DeepAdvice:     e.Analysis.DeepAdvice,
		}
	}
	return dto
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
