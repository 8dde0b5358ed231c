package entry

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	e := New("今日の日記", nil, now)

	if e.ID != 1700000000000 {
		t.Errorf("ID = %d, want unix millis of now", e.ID)
	}
	if e.Comments == nil {
		t.Error("nil comments must be normalized to an empty slice")
	}
	if !e.Valid() {
		t.Error("fresh entry must be valid")
	}
	if !e.CreatedAt().Equal(now) {
		t.Errorf("CreatedAt() = %v, want %v", e.CreatedAt(), now)
	}
}

func TestValid(t *testing.T) {
	base := func() *Entry {
		return &Entry{ID: 1, Date: "2026/08/29(土) 14:05", Comments: []Comment{}}
	}
	if !base().Valid() {
		t.Error("base entry should be valid")
	}

	e := base()
	e.ID = 0
	if e.Valid() {
		t.Error("zero id accepted")
	}
	e = base()
	e.Date = ""
	if e.Valid() {
		t.Error("empty date accepted")
	}
	e = base()
	e.Comments = nil
	if e.Valid() {
		t.Error("nil comments accepted")
	}
	var nilEntry *Entry
	if nilEntry.Valid() {
		t.Error("nil entry accepted")
	}
}

func TestFilter(t *testing.T) {
	in := []*Entry{
		{ID: 1, Date: "d", Comments: []Comment{}},
		nil,
		{ID: 0, Date: "d", Comments: []Comment{}},
		{ID: 2, Date: "d", Comments: []Comment{}},
	}
	out := Filter(in)
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Errorf("Filter() = %+v", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("こんにちは", 3); got != "こんに" {
		t.Errorf("Truncate = %q, want rune-based cut", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Errorf("Truncate zero = %q", got)
	}
}

func TestClampAnalysis(t *testing.T) {
	a := ClampAnalysis(Analysis{MoodScore: -10, Weather: strings.Repeat("曇", 80)})
	if a.MoodScore != 0 {
		t.Errorf("MoodScore = %d, want 0", a.MoodScore)
	}
	if n := len([]rune(a.Weather)); n != MaxWeatherLen {
		t.Errorf("Weather rune len = %d, want %d", n, MaxWeatherLen)
	}

	a = ClampAnalysis(Analysis{MoodScore: 250})
	if a.MoodScore != 100 {
		t.Errorf("MoodScore = %d, want 100", a.MoodScore)
	}
}

func TestFormatDisplayTime(t *testing.T) {
	// 2026-08-29 is a Saturday.
	stamp := FormatDisplayTime(time.Date(2026, 8, 29, 14, 5, 0, 0, time.Local))
	if stamp != "2026/08/29(土) 14:05" {
		t.Errorf("FormatDisplayTime = %q", stamp)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 29, 5, 0, 0, 0, time.UTC)
	got, err := ParseTime(FormatTime(now))
	if err != nil {
		t.Fatalf("ParseTime error = %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("round trip = %v, want %v", got, now)
	}
}
