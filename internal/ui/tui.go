// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/next-action-go/internal/output"
	"github.com/nibzard/next-action-go/internal/pick"
	"github.com/nibzard/next-action-go/internal/todotxt"
)

// Loader reads a fresh, resolved collection of tasks.
type Loader func() (todotxt.Tasks, error)

// Options configures the viewer.
type Options struct {
	// Pick selects the next actions. Its Limit is the initial page size;
	// the "a" key toggles between that and all next actions.
	Pick pick.Options
	// Render formats each next action.
	Render output.Options
	// Files are shown in the footer.
	Files []string
	// Interval between automatic reloads; zero means one second.
	Interval time.Duration
	// Opener opens URLs; nil uses the platform handler.
	Opener output.Opener
}

// RunTUI starts the interactive viewer on the terminal.
func RunTUI(ctx context.Context, load Loader, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(ctx, load, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	ctx          context.Context
	load         Loader
	opts         Options
	tickInterval time.Duration

	loadErr  error
	tasks    todotxt.Tasks
	actions  []*todotxt.Task
	cursor   int
	showAll  bool
	showHelp bool
	status   string
}

type tickMsg time.Time

type openedMsg struct {
	count int
	err   error
}

func newTUIModel(ctx context.Context, load Loader, opts Options) *tuiModel {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return &tuiModel{
		ctx:          ctx,
		load:         load,
		opts:         opts,
		tickInterval: interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.actions)-1 {
				m.cursor++
			}
		case "a":
			m.showAll = !m.showAll
			m.selectActions()
		case "b":
			m.opts.Render.Blocked = !m.opts.Render.Blocked
		case "h", "?":
			m.showHelp = !m.showHelp
		case "o", "enter":
			return m, m.openSelected()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case openedMsg:
		switch {
		case msg.err != nil:
			m.status = "Error: " + msg.err.Error()
		case msg.count == 0:
			m.status = "No URLs in this task."
		default:
			m.status = fmt.Sprintf("Opened %d URL(s).", msg.count)
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading todo.txt files:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.tasks == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	m.writeActions(&b)
	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}
	m.writeSettings(&b)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the tasks and reselects the next actions, keeping the
// cursor on the same task text when it is still listed.
func (m *tuiModel) refresh() {
	tasks, err := m.load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.actions = nil
		return
	}
	m.loadErr = nil
	if tasks == nil {
		tasks = todotxt.Tasks{}
	}
	m.tasks = tasks
	m.selectActions()
}

func (m *tuiModel) selectActions() {
	var selected string
	if m.cursor < len(m.actions) {
		selected = m.actions[m.cursor].Text
	}

	opts := m.opts.Pick
	if m.showAll {
		opts.Limit = pick.All
	}
	m.actions = pick.NextActions(m.tasks, opts)

	m.cursor = 0
	for i, action := range m.actions {
		if action.Text == selected {
			m.cursor = i
			break
		}
	}
}

func (m *tuiModel) openSelected() tea.Cmd {
	if m.cursor >= len(m.actions) {
		return nil
	}
	task := m.actions[m.cursor]
	ctx, opener := m.ctx, m.opts.Opener
	return func() tea.Msg {
		err := output.OpenURLs(ctx, []*todotxt.Task{task}, opener)
		return openedMsg{count: len(task.URLs()), err: err}
	}
}

func writeTitle(b *strings.Builder) {
	title := "next-action"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *tuiModel) writeActions(b *strings.Builder) {
	scope := "top"
	if m.showAll || m.opts.Pick.Limit == pick.All {
		scope = "all"
	}
	b.WriteString(fmt.Sprintf("Next Actions (%d, %s)\n\n", len(m.actions), scope))

	if len(m.actions) == 0 {
		b.WriteString("  " + output.NothingToDo + "\n\n")
		return
	}
	for i, action := range m.actions {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		lines := strings.Split(output.Render([]*todotxt.Task{action}, m.opts.Render), "\n")
		for j, line := range lines {
			if j == 0 {
				b.WriteString(marker + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeSettings(b *strings.Builder) {
	b.WriteString(fmt.Sprintf("  Tasks: %d  Contexts: %d  Projects: %d\n",
		len(m.tasks), len(m.tasks.Contexts()), len(m.tasks.Projects())))
	b.WriteString(fmt.Sprintf("  Today: %s\n", m.opts.Pick.Today().Format(time.DateOnly)))
	if len(m.opts.Files) > 0 {
		b.WriteString(fmt.Sprintf("  Files: %s\n", strings.Join(m.opts.Files, ", ")))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload the todo.txt files\n")
	b.WriteString("  up/k, down/j Move the cursor\n")
	b.WriteString("  o, enter     Open the URLs of the selected task\n")
	b.WriteString("  a            Toggle all next actions\n")
	b.WriteString("  b            Toggle blocked tasks\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
