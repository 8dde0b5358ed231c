package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/logging"
	"tableflip.dev/penpal/pkg/persona"
)

// Sanitization caps for the semi-trusted commentary payload.
const (
	maxResponseIDLen      = 50
	maxResponseCommentLen = 500
)

const commentarySystemPromptHeader = `You are a roleplay AI.
Analyze the user's diary entry and provide a response from EACH of the following characters.

Characters:
`

const commentarySystemPromptFooter = `
Instructions:
- Respond in Japanese.
- Keep each response short (max 2 sentences).
- Stay strictly in character based on the Personality description.
- Output MUST be valid JSON with this schema: { "responses": [ { "id": "persona_id", "comment": "comment text" } ] }
`

// commentaryPayload is the schema the model is asked to produce. Elements are
// RawMessage so each one can be validated and dropped individually.
type commentaryPayload struct {
	Responses []json.RawMessage `json:"responses"`
}

// Comments asks the service for one reply per selected persona and never
// fails: any transport or schema problem yields the deterministic fallback
// reply for every selected persona instead.
//
// The returned sequence may be shorter than the selection; no correlation
// check is made that every requested persona answered, and ids outside the
// selection are passed through untouched (renderers drop what they cannot
// resolve against the full roster).
func (c *Client) Comments(ctx context.Context, apiKey, text string, selectedIDs []string, catalog []persona.Persona) []entry.Comment {
	selected := filterSelected(selectedIDs, catalog)

	prompt := buildCommentaryPrompt(selected)
	res := c.generate(ctx, apiKey, prompt, text)

	switch res.Status {
	case StatusOK:
		comments, ok := parseCommentary(res.Text)
		if ok {
			return comments
		}
		logging.Errorf(logging.CategoryAPI, "commentary: malformed payload, using fallback")
	case StatusMalformed, StatusTransportFailure:
		logging.Errorf(logging.CategoryAPI, "commentary: %v, using fallback", res.Err)
	}

	fallback := make([]entry.Comment, 0, len(selected))
	for _, p := range selected {
		fallback = append(fallback, entry.Comment{
			PersonaID: p.ID,
			Text:      persona.Fallback(text, p.ID),
		})
	}
	return fallback
}

func filterSelected(ids []string, catalog []persona.Persona) []persona.Persona {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]persona.Persona, 0, len(ids))
	for _, p := range catalog {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func buildCommentaryPrompt(selected []persona.Persona) string {
	var b strings.Builder
	b.WriteString(commentarySystemPromptHeader)
	for _, p := range selected {
		b.WriteString("- ID: ")
		b.WriteString(strconvQuote(p.ID))
		b.WriteString(", Name: ")
		b.WriteString(strconvQuote(p.Name))
		b.WriteString(", Role: ")
		b.WriteString(strconvQuote(p.Role))
		b.WriteString(", Personality: ")
		b.WriteString(strconvQuote(p.Description))
		b.WriteString("\n")
	}
	b.WriteString(commentarySystemPromptFooter)
	return b.String()
}

// parseCommentary validates the semi-trusted payload. A missing or non-array
// responses field fails the whole payload; individual elements without
// string-typed id and comment are dropped, not substituted.
func parseCommentary(text string) ([]entry.Comment, bool) {
	var payload commentaryPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, false
	}
	if payload.Responses == nil {
		return nil, false
	}

	comments := make([]entry.Comment, 0, len(payload.Responses))
	for _, raw := range payload.Responses {
		var elem struct {
			ID      *string `json:"id"`
			Comment *string `json:"comment"`
		}
		if err := json.Unmarshal(raw, &elem); err != nil {
			continue
		}
		if elem.ID == nil || elem.Comment == nil {
			continue
		}
		comments = append(comments, entry.Comment{
			PersonaID: entry.Truncate(*elem.ID, maxResponseIDLen),
			Text:      entry.Truncate(*elem.Comment, maxResponseCommentLen),
		})
	}
	return comments, true
}

func strconvQuote(s string) string {
	return `"` + strings.NewReplacer(`"`, `\"`).Replace(s) + `"`
}
