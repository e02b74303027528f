package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reapctl/reap/internal/models"
	"github.com/reapctl/reap/internal/session"
)

// refreshInterval is the live-mode resampling cadence. Input stays
// responsive between refreshes because key events arrive independently of
// the timer.
const refreshInterval = 2 * time.Second

type tickMsg time.Time

type recordsMsg struct {
	records []models.ProcessRecord
	err     error
}

// SampleFunc produces a fresh, sorted record list. Sampling blocks for the
// inter-snapshot delay; it runs as a command so the loop never overlaps two
// samples.
type SampleFunc func() ([]models.ProcessRecord, error)

// App is the interactive selection view. All selection state lives in the
// session; App only translates terminal events and draws.
type App struct {
	sess   *session.Session
	sample SampleFunc
	live   bool
	ports  bool
	keys   keyMap
	help   help.Model
	width  int
	height int
	err    error
}

func NewApp(sample SampleFunc, live, ports bool) *App {
	return &App{
		sess:   session.New(),
		sample: sample,
		live:   live,
		ports:  ports,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Session exposes the selection state to the caller after the program exits.
func (a *App) Session() *session.Session { return a.sess }

// Err reports a sampling failure that ended the program.
func (a *App) Err() error { return a.err }

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.refresh()}
	if a.live {
		cmds = append(cmds, a.tick())
	}
	return tea.Batch(cmds...)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		records, err := a.sample()
		return recordsMsg{records: records, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		// Refreshing is suppressed behind the confirmation gate; the timer
		// keeps running so browsing resumes on cancel.
		if a.sess.Phase() == session.Browsing {
			return a, tea.Batch(a.refresh(), a.tick())
		}
		return a, a.tick()

	case recordsMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, tea.Quit
		}
		a.sess.SetRecords(msg.records)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sess.Phase() == session.ConfirmPending {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			a.sess.Confirm()
		case key.Matches(msg, a.keys.Cancel):
			a.sess.Cancel()
		}
	} else {
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.sess.Quit()
		case key.Matches(msg, a.keys.Up):
			a.sess.CursorUp()
		case key.Matches(msg, a.keys.Down):
			a.sess.CursorDown()
		case key.Matches(msg, a.keys.Mark):
			a.sess.ToggleMark()
		case key.Matches(msg, a.keys.Confirm):
			a.sess.RequestConfirm()
		}
	}

	if a.sess.Phase() == session.Exiting {
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.sess.Phase() == session.ConfirmPending {
		return a.renderConfirm()
	}
	return a.renderTable()
}

// nameWidth is the space left for the name column after the fixed columns.
func (a *App) nameWidth() int {
	fixed := 2 + 7 + 7 + 9 + 4
	if a.ports {
		fixed += 6 + 5 + 2
	}
	w := a.width - fixed
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (a *App) renderTable() string {
	records := a.sess.Records()
	nameW := a.nameWidth()

	title := " reap "
	if n := a.sess.MarkedCount(); n > 0 {
		title = fmt.Sprintf(" reap - %d selected ", n)
	}

	header := fmt.Sprintf("  %-7s %-*s %7s %9s", "PID", nameW, "NAME", "CPU %", "MEMORY")
	if a.ports {
		header += fmt.Sprintf(" %6s %5s", "PORT", "PROTO")
	}

	visibleRows := a.height - 6
	if visibleRows < 1 {
		visibleRows = 1
	}
	start := 0
	if a.sess.Cursor() >= visibleRows {
		start = a.sess.Cursor() - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(records) {
		end = len(records)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		b.WriteString(a.renderRow(records[i], i == a.sess.Cursor(), nameW))
		b.WriteString("\n")
	}

	if len(records) == 0 {
		b.WriteString(DimStyle.Render("  No processes found"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(a.help.View(a.keys)))
	return b.String()
}

func (a *App) renderRow(rec models.ProcessRecord, underCursor bool, nameW int) string {
	marker := " "
	if a.sess.IsMarked(rec.PID) {
		marker = "●"
	}

	pid := fmt.Sprintf("%-7d", rec.PID)
	name := fmt.Sprintf("%-*s", nameW, truncate(rec.Name, nameW))
	cpu := fmt.Sprintf("%6.1f%%", rec.CPUPercent)
	mem := fmt.Sprintf("%9s", fmt.Sprintf("%d MB", rec.MemoryMB))

	var port string
	if a.ports {
		port = fmt.Sprintf(" %6d %5s", rec.Port, rec.Protocol)
	}

	if underCursor {
		return CursorRowStyle.Render(fmt.Sprintf("▶%s %s %s %s %s%s", marker, pid, name, cpu, mem, port))
	}

	return fmt.Sprintf("%s%s %s %s %s %s%s",
		" ",
		MarkerStyle.Render(marker),
		PIDStyle.Render(pid),
		NameStyle.Render(name),
		cpuStyle(rec.CPUPercent).Render(cpu),
		MemStyle.Render(mem),
		PortStyle.Render(port),
	)
}

func (a *App) renderConfirm() string {
	count := a.sess.MarkedCount()
	plural := "es"
	if count == 1 {
		plural = ""
	}
	text := fmt.Sprintf("Kill %d process%s?\n\n[Enter] Confirm  [Esc] Cancel", count, plural)
	box := ConfirmBoxStyle.Render(text)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
