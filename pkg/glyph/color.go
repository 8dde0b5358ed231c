package glyph

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

// ColorTag is the badge color assigned to a persona.
type ColorTag int

const (
	Green ColorTag = iota
	Yellow
	Pink
	Orange
	Purple
	Blue
	Red
	Gray
	Indigo
	Teal
)

var colorIDs = []string{"green", "yellow", "pink", "orange", "purple", "blue", "red", "gray", "indigo", "teal"}

var colorLabels = []string{"緑", "黄", "ピンク", "オレンジ", "紫", "青", "赤", "黒", "藍", "ティール"}

var colorAttrs = [][]color.Attribute{
	{color.FgGreen},
	{color.FgYellow},
	{color.FgHiMagenta},
	{color.FgHiYellow},
	{color.FgMagenta},
	{color.FgBlue},
	{color.FgRed},
	{color.FgHiBlack},
	{color.FgHiBlue},
	{color.FgCyan},
}

// ColorTags lists every selectable color tag in catalog order.
func ColorTags() []ColorTag {
	tags := make([]ColorTag, len(colorIDs))
	for i := range colorIDs {
		tags[i] = ColorTag(i)
	}
	return tags
}

func (c ColorTag) valid() bool {
	return c >= 0 && int(c) < len(colorIDs)
}

func (c ColorTag) ID() string {
	if !c.valid() {
		return colorIDs[Gray]
	}
	return colorIDs[c]
}

// Label is the Japanese display label, matching the settings UI.
func (c ColorTag) Label() string {
	if !c.valid() {
		return colorLabels[Gray]
	}
	return colorLabels[c]
}

// Sprint renders s in the tag color.
func (c ColorTag) Sprint(s string) string {
	attrs := colorAttrs[Gray]
	if c.valid() {
		attrs = colorAttrs[c]
	}
	return color.New(attrs...).Sprint(s)
}

func (c ColorTag) String() string {
	return c.ID()
}

// ColorForID resolves a stored color id; unrecognized ids fall back to gray
// rather than failing the record.
func ColorForID(id string) ColorTag {
	for i, v := range colorIDs {
		if v == id {
			return ColorTag(i)
		}
	}
	return Gray
}

// ParseColor is the strict variant used for user input.
func ParseColor(id string) (ColorTag, error) {
	for i, v := range colorIDs {
		if v == id {
			return ColorTag(i), nil
		}
	}
	return Gray, fmt.Errorf("glyph: unknown color %q", id)
}

func (c ColorTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ID())
}

func (c *ColorTag) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	*c = ColorForID(id)
	return nil
}
