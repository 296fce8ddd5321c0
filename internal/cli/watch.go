package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

const watchInterval = time.Second

// WatchCmd returns the watch command.
func WatchCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("watch", flag.ContinueOnError),
		Usage: "watch",
		Short: "Live dashboard of the running task",
		Long: `Show a live dashboard: the running task with its elapsed time and
today's time per category, refreshed every second from the data file.

Keys: p pause, r resume, s stop, q quit.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execWatch(ctx, io, a)
		},
	}
}

func execWatch(ctx context.Context, io *IO, a *app) error {
	out := io.Out()

	p := tea.NewProgram(
		newWatchModel(a, newStyles(out)),
		tea.WithContext(ctx),
		tea.WithInput(a.stdin),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}

	return nil
}

type watchTickMsg time.Time

func watchTick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// watchModel is the bubbletea model behind tt watch. It rereads the data
// file on every tick so changes made from other shells show up.
type watchModel struct {
	a      *app
	st     styles
	store  *tracker.Store
	now    time.Time
	notice string
	err    error
	width  int
}

func newWatchModel(a *app, st styles) watchModel {
	m := watchModel{a: a, st: st}
	m.reload()

	return m
}

func (m *watchModel) reload() {
	m.now = m.a.now()

	s, err := m.a.file.Load()
	m.store = s
	m.err = err
}

// mutate applies op to a freshly loaded store and saves it.
func (m *watchModel) mutate(verb string, op func(*tracker.Engine) (tracker.Ref, error)) {
	m.reload()

	if m.err != nil {
		return
	}

	eng := tracker.NewEngine(m.store, m.a.clock)

	ref, err := op(eng)
	if err != nil {
		m.notice = err.Error()

		return
	}

	err = m.a.save(m.store)
	if err != nil {
		m.err = err

		return
	}

	m.notice = verb + " " + ref.Task.Name + " (" + ref.Category + ")"
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.mutate("Paused", (*tracker.Engine).Pause)
		case "s":
			m.mutate("Stopped", (*tracker.Engine).Stop)
		case "r":
			m.mutate("Resumed", func(e *tracker.Engine) (tracker.Ref, error) {
				return e.Resume("")
			})
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case watchTickMsg:
		m.reload()

		return m, watchTick()
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(m.st.title.Render("tt watch - " + m.now.Format("Mon Jan 2 15:04:05")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString("error: " + m.err.Error() + "\n\n")
	}

	var current string

	if ref, ok := m.store.FirstWithStatus(tracker.StatusRunning); ok {
		current = fmt.Sprintf("%s %s\n%s",
			m.st.status(ref.Task.Status), m.st.task(ref), tracker.FormatClock(ref.Task.Accrue(m.now)))
	} else {
		current = m.st.faint.Render("Idle") + ": no task is running."
	}

	box := m.st.box
	if m.width > 4 {
		box = box.Width(min(m.width-4, 60))
	}

	b.WriteString(box.Render(current))
	b.WriteString("\n\n")

	report := tracker.Summarize(m.store, m.now, tracker.SummaryOptions{Window: tracker.Day})

	b.WriteString("Last day:\n")

	if len(report.Categories) == 0 {
		b.WriteString("  nothing tracked\n")
	}

	for _, cat := range report.Categories {
		fmt.Fprintf(&b, "  %-20s %s\n", cat.Category, tracker.FormatHMS(cat.Total))
	}

	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}

	b.WriteString("\n" + m.st.faint.Render("p pause • r resume • s stop • q quit") + "\n")

	return b.String()
}
