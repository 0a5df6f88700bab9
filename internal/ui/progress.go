package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status is the outcome of one sample.
type Status uint8

const (
	StatusDone Status = iota
	StatusError
)

// Event reports one finished sample of a batch.
type Event struct {
	Index  int
	Label  string // output file or "#index"
	Bytes  int
	Short  bool // below OUT_MIN
	Status Status
}

func (ev Event) badge() string {
	switch {
	case ev.Status == StatusError:
		return badgeErr.Render(" error")
	case ev.Short:
		return badgeShort.Render(" short")
	}
	return badgeOK.Render("  done")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	badgeOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badgeErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	badgeShort  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// recentRows is how many finished samples stay listed above the bar.
const recentRows = 8

// tally accumulates batch counters independent of rendering.
type tally struct {
	done, failed, short, bytes int
}

func (t *tally) add(ev Event) {
	if ev.Status == StatusError {
		t.failed++
	} else {
		t.done++
		t.bytes += ev.Bytes
	}
	if ev.Short {
		t.short++
	}
}

func (t tally) seen() int { return t.done + t.failed }

type progressModel struct {
	title  string
	total  int
	events <-chan Event

	spin   spinner.Model
	bar    progress.Model
	width  int
	recent []Event
	tally
	closed bool
}

type (
	eventMsg Event
	doneMsg  struct{}
)

// NewProgressModel renders a generation batch fed by events.
// The program quits once events is closed.
func NewProgressModel(title string, total int, events <-chan Event) tea.Model {
	m := &progressModel{
		title:  title,
		total:  total,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		width:  80,
	}
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.record(Event(msg)), m.next())
	case doneMsg:
		m.closed = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case spinner.TickMsg:
		if !m.closed {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) resize(w int) {
	if w <= 0 {
		return
	}
	m.width = w
	m.bar.Width = max(w-4, 10)
}

func (m *progressModel) record(ev Event) tea.Cmd {
	m.add(ev)
	if len(m.recent) == recentRows {
		copy(m.recent, m.recent[1:])
		m.recent = m.recent[:recentRows-1]
	}
	m.recent = append(m.recent, ev)
	if m.total <= 0 {
		return nil
	}
	return m.bar.SetPercent(float64(m.seen()) / float64(m.total))
}

func (m *progressModel) View() string {
	var b strings.Builder

	head := fmt.Sprintf("%s (%d/%d)", m.title, m.seen(), m.total)
	if m.closed {
		head = "done: " + head
	} else {
		head = m.spin.View() + " " + head
	}
	b.WriteString(headerStyle.Render(head) + "\n\n")

	labelWidth := max(m.width-24, 20)
	for _, ev := range m.recent {
		label := runewidth.FillRight(truncate(ev.Label, labelWidth), labelWidth)
		fmt.Fprintf(&b, "  %s %s %8d B\n", ev.badge(), label, ev.Bytes)
	}

	pct := m.bar.Percent()
	if m.closed {
		pct = 1
	}
	b.WriteString("\n" + m.bar.ViewAs(pct) + "\n")
	b.WriteString(dimStyle.Render(m.footer()) + "\n")
	return b.String()
}

func (m *progressModel) footer() string {
	parts := []string{fmt.Sprintf("  %d bytes", m.bytes)}
	if m.short > 0 {
		parts = append(parts, fmt.Sprintf("%d below OUT_MIN", m.short))
	}
	if m.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", m.failed))
	}
	return strings.Join(parts, ", ")
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
