package entry

import (
	"time"
)

// MaxContentLen is the diary entry length cap, enforced at submit time.
const MaxContentLen = 2000

// Field caps for the analysis report. Upstream values are truncated, never
// rejected.
const (
	MaxWeatherLen        = 50
	MaxHiddenEmotionsLen = 300
	MaxLuckyActionLen    = 200
	MaxDeepAdviceLen     = 300
)

// Comment is one persona's reply attached to an entry. PersonaID may refer to
// a persona that has since been deleted; renderers skip what they cannot
// resolve.
type Comment struct {
	PersonaID string `json:"personaId"`
	Text      string `json:"text"`
}

// Analysis is the optional mood/insight report for an entry.
type Analysis struct {
	MoodScore      int    `json:"moodScore"`
	Weather        string `json:"weather"`
	HiddenEmotions string `json:"hiddenEmotions"`
	LuckyAction    string `json:"luckyAction"`
	DeepAdvice     string `json:"deepAdvice"`
}

// Entry is one diary record. ID and Date are fixed at creation; Content may
// be edited later, and Analysis is attached or removed by explicit user
// action.
type Entry struct {
	ID       int64     `json:"id"`
	Date     string    `json:"date"`
	Content  string    `json:"content"`
	Comments []Comment `json:"comments"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// New creates an entry stamped with now. The id doubles as the creation
// instant in unix milliseconds.
func New(content string, comments []Comment, now time.Time) *Entry {
	if comments == nil {
		comments = []Comment{}
	}
	return &Entry{
		ID:       now.UnixMilli(),
		Date:     FormatDisplayTime(now),
		Content:  content,
		Comments: comments,
	}
}

// Valid reports whether a loaded record has the minimum shape to keep.
// Invalid records are dropped individually rather than failing the whole load.
func (e *Entry) Valid() bool {
	return e != nil && e.ID != 0 && e.Date != "" && e.Comments != nil
}

// Filter keeps only valid records, preserving order.
func Filter(entries []*Entry) []*Entry {
	kept := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e.Valid() {
			kept = append(kept, e)
		}
	}
	return kept
}

// ClampAnalysis coerces an analysis report into its documented bounds.
func ClampAnalysis(a Analysis) Analysis {
	if a.MoodScore < 0 {
		a.MoodScore = 0
	}
	if a.MoodScore > 100 {
		a.MoodScore = 100
	}
	a.Weather = Truncate(a.Weather, MaxWeatherLen)
	a.HiddenEmotions = Truncate(a.HiddenEmotions, MaxHiddenEmotionsLen)
	a.LuckyAction = Truncate(a.LuckyAction, MaxLuckyActionLen)
	a.DeepAdvice = Truncate(a.DeepAdvice, MaxDeepAdviceLen)
	return a
}

// Truncate cuts s to at most n runes. Caps are defined in characters, not
// bytes, so multibyte text does not get split mid-rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
