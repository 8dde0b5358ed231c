package glyph

import (
	"encoding/json"
	"testing"
)

func TestColorForID(t *testing.T) {
	if got := ColorForID("pink"); got != Pink {
		t.Errorf("ColorForID(pink) = %v", got)
	}
	if got := ColorForID("chartreuse"); got != Gray {
		t.Errorf("ColorForID unknown = %v, want Gray", got)
	}
}

func TestParseColor(t *testing.T) {
	if got, err := ParseColor("teal"); err != nil || got != Teal {
		t.Errorf("ParseColor(teal) = %v, %v", got, err)
	}
	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("ParseColor should reject unknown ids")
	}
	if _, err := ParseColor(""); err == nil {
		t.Error("ParseColor should reject empty id")
	}
}

func TestColorTagJSON(t *testing.T) {
	data, err := json.Marshal(Orange)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"orange"` {
		t.Errorf("marshal = %s", data)
	}

	var c ColorTag
	if err := json.Unmarshal([]byte(`"purple"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != Purple {
		t.Errorf("unmarshal = %v", c)
	}

	// Stored records with a stale color id load as gray, not as an error.
	if err := json.Unmarshal([]byte(`"mauve"`), &c); err != nil {
		t.Fatalf("unmarshal unknown: %v", err)
	}
	if c != Gray {
		t.Errorf("unknown id = %v, want Gray", c)
	}
}

func TestLookup(t *testing.T) {
	if g := Lookup("teacher"); g.Symbol == "" {
		t.Error("Lookup(teacher) returned an empty glyph")
	}
	// Unknown keys resolve to a usable placeholder, never an empty symbol.
	if g := Lookup("no-such-icon"); g.Symbol == "" {
		t.Error("Lookup fallback has no symbol")
	}
}
