package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/penpal/pkg/entry"
)

func TestRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	entries := []*entry.Entry{
		entry.New("二日目の日記", []entry.Comment{{PersonaID: "teacher", Text: "よく書けています。"}}, now),
		entry.New("初日の日記", nil, now.Add(-24*time.Hour)),
	}
	entries[0].Analysis = &entry.Analysis{MoodScore: 80, Weather: "晴れ"}

	var buf bytes.Buffer
	if err := Write(&buf, entries, now); err != nil {
		t.Fatal(err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i].ID != entries[i].ID || got[i].Content != entries[i].Content {
			t.Errorf("entry %d changed in round trip: %+v vs %+v", i, got[i], entries[i])
		}
	}
	if got[0].Analysis == nil || got[0].Analysis.MoodScore != 80 {
		t.Errorf("analysis lost in round trip: %+v", got[0].Analysis)
	}
	if len(got[0].Comments) != 1 || got[0].Comments[0].PersonaID != "teacher" {
		t.Errorf("comments lost in round trip: %+v", got[0].Comments)
	}
}

func TestReadDropsInvalidRecords(t *testing.T) {
	payload := `{
	  "exportDate": "2026-08-29T10:00:00Z",
	  "appName": "penpal",
	  "entries": [
	    {"id": 1756461600000, "date": "2026/08/29(土) 19:00", "content": "valid", "comments": []},
	    {"id": 0, "date": "", "content": "", "comments": []}
	  ]
	}`
	got, err := Read(strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Content != "valid" {
		t.Fatalf("expected only the valid record, got %+v", got)
	}
}

func TestReadRejectsMissingEntries(t *testing.T) {
	if _, err := Read(strings.NewReader(`{"exportDate": "x", "appName": "penpal"}`)); err == nil {
		t.Error("expected error for backup without entries")
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	if got := DefaultFilename(now); got != "penpal-2026-08-29.json" {
		t.Errorf("unexpected filename %q", got)
	}
}
