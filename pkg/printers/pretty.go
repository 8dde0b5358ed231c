package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
)

// PrettyPrint renders journal entries for the terminal. Resolve maps a
// comment's persona id to its persona; comments whose id cannot be resolved
// are skipped without complaint.
type PrettyPrint struct {
	ShowID  bool
	Resolve func(id string) (persona.Persona, bool)
}

var spacing = strings.Repeat(" ", len("1756461600000  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Journal prints entries newest first, each with its persona comments and any
// mood report.
func (pp *PrettyPrint) Journal(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	for _, e := range entries {
		pp.Entry(e)
	}
}

// Entry prints one diary record.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	d := color.New(color.Bold)
	t := color.New()

	if pp.ShowID {
		id := fmt.Sprintf("%d", e.ID)
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Print(id)
		_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
	}
	_, _ = d.Println(e.Date)
	_, _ = t.Println(indent(e.Content))

	for _, c := range e.Comments {
		pp.comment(c)
	}
	if e.Analysis != nil {
		pp.analysis(e.Analysis)
	}
	_, _ = t.Println("")
}

func (pp *PrettyPrint) comment(c entry.Comment) {
	if pp.Resolve == nil {
		return
	}
	p, ok := pp.Resolve(c.PersonaID)
	if !ok {
		return
	}
	name := p.Color.Sprint(p.Name)
	fmt.Printf("  %s %s: %s\n", p.Glyph().Symbol, name, c.Text)
}

func (pp *PrettyPrint) analysis(a *entry.Analysis) {
	h := color.New(color.Faint, color.Underline)
	f := color.New(color.Faint)

	_, _ = h.Println("  こころの天気予報")
	_, _ = f.Printf("  気分スコア: %d / 100\n", a.MoodScore)
	_, _ = f.Printf("  天気: %s\n", a.Weather)
	if a.HiddenEmotions != "" {
		_, _ = f.Printf("  隠れた感情: %s\n", a.HiddenEmotions)
	}
	if a.LuckyAction != "" {
		_, _ = f.Printf("  ラッキーアクション: %s\n", a.LuckyAction)
	}
	if a.DeepAdvice != "" {
		_, _ = f.Printf("  アドバイス: %s\n", a.DeepAdvice)
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
