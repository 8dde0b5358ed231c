// Package teaui is the interactive journal view: entries on the left, the
// selected entry with its persona comments on the right, live-updated from
// persistence snapshots.
package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/penpal/pkg/app"
	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
)

type entryItem struct{ e *entry.Entry }

func (it entryItem) Title() string {
	return fmt.Sprintf("%s  %s", it.e.Date, entry.Truncate(it.e.Content, 30))
}
func (it entryItem) Description() string { return "" }
func (it entryItem) FilterValue() string { return it.e.Content }

// Model contains UI state.
type Model struct {
	svc  *app.Service
	ctx  context.Context
	mode mode

	entList list.Model
	input   textinput.Model

	snapshots <-chan *store.State

	status string

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, snapshots <-chan *store.State) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 44, 20)
	l.Title = "Journal"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "今日はどんな一日だった？"
	ti.CharLimit = entry.MaxContentLen
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	m := Model{
		svc:       svc,
		ctx:       context.Background(),
		mode:      modeNormal,
		entList:   l,
		input:     ti,
		snapshots: snapshots,
		status:    "NORMAL: j/k move, o write, a analyze, dd delete, r refresh, : commands, ? help",
	}
	return m
}

// Init loads the journal and begins listening for remote snapshots.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadEntries(), m.waitForSnapshot())
}

func (m *Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		all := m.svc.Entries()
		items := make([]list.Item, 0, len(all))
		for _, e := range all {
			items = append(items, entryItem{e: e})
		}
		return entriesLoadedMsg{items}
	}
}

func (m *Model) waitForSnapshot() tea.Cmd {
	if m.snapshots == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-m.snapshots
		if !ok {
			return nil
		}
		return snapshotMsg{state}
	}
}

type errMsg struct{ err error }
type entriesLoadedMsg struct{ items []list.Item }
type snapshotMsg struct{ state *store.State }
type submittedMsg struct{}
type analyzedMsg struct{}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case entriesLoadedMsg:
		m.entList.SetItems(msg.items)
		if len(msg.items) > 0 && m.entList.Index() < 0 {
			m.entList.Select(0)
		}
	case snapshotMsg:
		m.svc.ApplySnapshot(msg.state)
		m.status = "Synced"
		cmds = append(cmds, m.loadEntries(), m.waitForSnapshot())
	case submittedMsg:
		m.status = "Written"
		cmds = append(cmds, m.loadEntries())
	case analyzedMsg:
		m.status = "Report attached"
		cmds = append(cmds, m.loadEntries())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
				skipListRouting = true
			}
		case modeInsert:
			switch msg.String() {
			case "enter":
				input := strings.TrimSpace(m.input.Value())
				if input != "" {
					cmds = append(cmds, m.submit(input))
					m.status = "Writing..."
				}
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Write cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeCommand:
			switch msg.String() {
			case "enter":
				input := strings.TrimSpace(m.input.Value())
				switch input {
				case "q", "quit", "exit":
					cmds = append(cmds, tea.Quit)
				case "":
					// nothing
				default:
					m.status = fmt.Sprintf("Unknown command: %s", input)
				}
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Command cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			switch msg.String() {
			case ":":
				m.enterCommandMode(&cmds)
				skipListRouting = true
			case "o":
				m.enterInsertMode(&cmds)
				skipListRouting = true
			case "a":
				if it := m.currentEntry(); it != nil {
					cmds = append(cmds, m.analyze(it.e.ID))
					m.status = "Analyzing..."
				}
				skipListRouting = true
			case "d":
				if it := m.currentEntry(); it != nil {
					if m.status == "dd deletes, press d again" {
						cmds = append(cmds, m.deleteEntry(it.e.ID))
					} else {
						m.status = "dd deletes, press d again"
						skipListRouting = true
					}
				}
			case "r":
				cmds = append(cmds, m.loadEntries())
			case "?":
				m.mode = modeHelp
			case "q":
				m.status = "Use :q or :exit to quit"
				skipListRouting = true
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		m.entList, cmd = m.entList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) currentEntry() *entryItem {
	if len(m.entList.Items()) == 0 {
		return nil
	}
	sel := m.entList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, _ := sel.(entryItem)
	return &it
}

func (m *Model) submit(content string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Submit(m.ctx, content); err != nil {
			return errMsg{err}
		}
		return submittedMsg{}
	}
}

func (m *Model) analyze(id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Analyze(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return analyzedMsg{}
	}
}

func (m *Model) deleteEntry(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{nil}
	}
}

// detail renders the selected entry with resolved persona comments.
func (m Model) detail() string {
	it := m.currentEntry()
	if it == nil {
		return lipgloss.NewStyle().Italic(true).Render("no entries yet, press o to write one")
	}
	e := it.e

	b := strings.Builder{}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(e.Date))
	b.WriteString("\n\n")
	b.WriteString(e.Content)
	b.WriteString("\n")

	for _, c := range e.Comments {
		p, ok := m.svc.FindPersona(c.PersonaID)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s %s: %s", p.Glyph().Symbol, p.Name, c.Text))
	}

	if a := e.Analysis; a != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Underline(true).Render("こころの天気予報"))
		b.WriteString(fmt.Sprintf("\n気分スコア: %d / 100\n天気: %s", a.MoodScore, a.Weather))
		if a.DeepAdvice != "" {
			b.WriteString("\nアドバイス: " + a.DeepAdvice)
		}
	}
	return b.String()
}

// View renders the list, the detail pane, and any input overlay.
func (m Model) View() string {
	left := m.entList.View()
	right := lipgloss.NewStyle().Padding(0, 2).Width(m.detailWidth()).Render(m.detail())
	modeStr := map[mode]string{modeNormal: "NORMAL", modeInsert: "WRITE", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(fmt.Sprintf("[%s] %s", modeStr, m.status))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.mode == modeInsert {
		body += "\n\nWrite: " + m.input.View()
	}
	if m.mode == modeCommand {
		body += "\n\n:" + m.input.View()
	}
	if m.mode == modeHelp {
		help := "Keys: ↑/↓ or j/k move, o write entry, a attach mood report, dd delete, r refresh, :q quit"
		body += "\n\n" + lipgloss.NewStyle().Italic(true).Render(help)
	}

	return body + "\n\n" + status
}

// Run launches the Bubble Tea UI.
func Run(svc *app.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(New(svc, snapshots), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 3
	if left < 30 {
		left = 30
	}
	if left > 48 {
		left = 48
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.entList.SetSize(left, height)
}

func (m Model) detailWidth() int {
	w := m.termWidth - m.entList.Width() - 4
	if w < 20 {
		w = 60
	}
	return w
}

func (m *Model) enterInsertMode(cmds *[]tea.Cmd) {
	m.mode = modeInsert
	m.input.Reset()
	m.input.Placeholder = "今日はどんな一日だった？"
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.status = "WRITE: enter submits, esc cancels"
}

func (m *Model) enterCommandMode(cmds *[]tea.Cmd) {
	m.mode = modeCommand
	m.input.Reset()
	m.input.Placeholder = "command"
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.status = "COMMAND: type :q or :exit to quit"
}
