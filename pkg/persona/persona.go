// Package persona holds the character roster that comments on diary entries:
// the fixed built-in cast, user-created characters, and the registry that
// resolves visibility, selection, and display order.
package persona

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/penpal/pkg/glyph"
)

// Field caps, enforced on create by truncation.
const (
	MaxNameLen = 20
	MaxRoleLen = 10
	MaxDescLen = 200
)

// Persona is one character profile. Description is the free-text personality
// fragment embedded into the commentary prompt.
type Persona struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Icon        string         `json:"icon"`
	Color       glyph.ColorTag `json:"color"`
	Description string         `json:"desc"`
	Builtin     bool           `json:"builtin,omitempty"`
}

// Glyph resolves the persona's avatar icon.
func (p Persona) Glyph() glyph.Glyph {
	return glyph.Lookup(p.Icon)
}

// Valid reports whether a loaded custom persona record has the minimum shape
// to keep. Used to filter corrupt records individually on load.
func (p Persona) Valid() bool {
	return p.ID != "" && p.Name != "" && p.Role != ""
}

// Filter keeps only valid records, preserving order.
func Filter(personas []Persona) []Persona {
	kept := make([]Persona, 0, len(personas))
	for _, p := range personas {
		if p.Valid() {
			kept = append(kept, p)
		}
	}
	return kept
}

// DefaultSelectedIDs is the selection used when no stored selection exists.
func DefaultSelectedIDs() []string {
	return []string{"teacher", "friend"}
}

// Builtins returns the fixed, non-deletable cast. The slice is rebuilt on
// every call so callers can never mutate the originals.
func Builtins() []Persona {
	return []Persona{
		{
			ID: "teacher", Name: "田中先生", Role: "先生",
			Icon: "teacher", Color: glyph.Green, Builtin: true,
			Description: "優しく諭してくれる恩師。少し古風だが生徒思い。教育的指導を含めることが多い。",
		},
		{
			ID: "friend", Name: "親友のミカ", Role: "友達",
			Icon: "gal", Color: glyph.Yellow, Builtin: true,
			Description: "いつも味方でいてくれる元気な友人。ギャル語混じりで、共感力が高い。テンションが高い。",
		},
		{
			ID: "lover", Name: "恋人のユウタ", Role: "恋人",
			Icon: "hearts", Color: glyph.Pink, Builtin: true,
			Description: "全肯定してくれる甘い存在。ユーザーのことが大好きで、少し過保護。キザなセリフも言う。",
		},
		{
			ID: "aunt", Name: "お節介な叔母さん", Role: "親戚",
			Icon: "grandma", Color: glyph.Orange, Builtin: true,
			Description: "心配性で現実的なアドバイスをくれる。健康や食事のことを気にする。口調は「〜だわよ」「〜しなさい」。",
		},
		{
			ID: "celeb", Name: "カリスマタレントRay", Role: "有名人",
			Icon: "cool", Color: glyph.Purple, Builtin: true,
			Description: "少し上から目線だが、夢を語るスター。英語混じりのルー大柴的な口調。ポジティブで野心的。",
		},
		{
			ID: "isekai", Name: "暗黒騎士ゼイド", Role: "異世界人",
			Icon: "dragon", Color: glyph.Gray, Builtin: true,
			Description: "現代の常識が通じない、魔界の住人。ユーザーを「契約者」や「盟友」と呼ぶ。中二病的な言い回し。",
		},
	}
}

// NewID generates a custom persona id from the creation instant and bumps it
// until it does not collide with anything taken reports as in use.
func NewID(now time.Time, taken func(id string) bool) string {
	ms := now.UnixMilli()
	id := fmt.Sprintf("custom-%d", ms)
	for taken(id) {
		ms++
		id = fmt.Sprintf("custom-%d", ms)
	}
	return id
}

// Sanitize trims and truncates the user-editable fields.
func Sanitize(p Persona) Persona {
	p.Name = truncate(strings.TrimSpace(p.Name), MaxNameLen)
	p.Role = truncate(strings.TrimSpace(p.Role), MaxRoleLen)
	p.Description = truncate(strings.TrimSpace(p.Description), MaxDescLen)
	return p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
