// Package preview shows a tabbed code viewer in the terminal.
//
// Every key press or click is turned into a single selection change
// on a [tabs.Set], so the terminal view obeys the same rules as the
// generated pages: exactly one tab is shown at a time.
package preview

import (
	"context"
	"io"
	"strings"

	"braces.dev/errtrace"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.abhg.dev/codetabs/internal/highlight"
	"go.abhg.dev/codetabs/internal/tabs"
)

const (
	colorActive   lipgloss.Color = "#f5c2e7"
	colorInactive lipgloss.Color = "#7f849c"
	colorRule     lipgloss.Color = "#45475a"
)

var (
	_activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Underline(true).
			Foreground(colorActive)

	_inactiveTabStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorInactive)

	_ruleStyle = lipgloss.NewStyle().Foreground(colorRule)
	_helpStyle = lipgloss.NewStyle().Foreground(colorInactive)
)

// _tabGap separates tabs in the strip.
const _tabGap = " "

// Highlighter renders code for the terminal.
type Highlighter interface {
	Highlight(*highlight.Code) string
}

var _ Highlighter = (*highlight.TerminalHighlighter)(nil)

// Model is a Bubble Tea model over a tab set.
type Model struct {
	tabs tabs.Set
	hl   Highlighter

	width int
}

var _ tea.Model = Model{}

// New builds a Model showing the given tabs.
func New(set tabs.Set, hl Highlighter) Model {
	if hl == nil {
		hl = new(highlight.TerminalHighlighter)
	}
	return Model{tabs: set, hl: hl}
}

// Tabs returns the current tab state.
func (m Model) Tabs() tabs.Set { return m.tabs }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			m.tabs = m.tabs.Select(m.tabAt(msg.X))
		}
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "shift+tab":
		m.tabs = m.tabs.Prev()
	case "right", "l", "tab":
		m.tabs = m.tabs.Next()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.tabs = m.tabs.Select(int(key[0] - '1'))
	}
	return m, nil
}

// compact reports whether the strip should use short titles.
func (m Model) compact() bool {
	return m.width > 0 && lipgloss.Width(m.renderStrip(false)) > m.width
}

func (m Model) renderTabs(compact bool) []string {
	all := m.tabs.Tabs()
	rendered := make([]string, len(all))
	for i, t := range all {
		title := t.Title
		if compact {
			title = t.CompactTitle()
		}
		style := _inactiveTabStyle
		if t.Selected {
			style = _activeTabStyle
		}
		rendered[i] = style.Render(title)
	}
	return rendered
}

func (m Model) renderStrip(compact bool) string {
	return strings.Join(m.renderTabs(compact), _tabGap)
}

// tabBounds returns the column at which each tab in the strip ends
// (exclusive).
func (m Model) tabBounds() []int {
	var x int
	rendered := m.renderTabs(m.compact())
	bounds := make([]int, len(rendered))
	for i, r := range rendered {
		x += lipgloss.Width(r)
		bounds[i] = x
		x += len(_tabGap)
	}
	return bounds
}

// tabAt returns the index of the tab at column x of the strip, or -1.
func (m Model) tabAt(x int) int {
	var start int
	for i, end := range m.tabBounds() {
		if x >= start && x < end {
			return i
		}
		start = end + len(_tabGap)
	}
	return -1
}

// View implements tea.Model.
func (m Model) View() string {
	strip := m.renderStrip(m.compact())

	ruleWidth := lipgloss.Width(strip)
	if m.width > 0 {
		ruleWidth = m.width
	}

	_, sel := m.tabs.Selected()

	var sb strings.Builder
	sb.WriteString(strip)
	sb.WriteString("\n")
	sb.WriteString(_ruleStyle.Render(strings.Repeat("─", ruleWidth)))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(m.hl.Highlight(sel.Tokens), "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(_helpStyle.Render("←/→ switch tabs • 1-9 jump • q quit"))
	return sb.String()
}

// Options configures [Run].
type Options struct {
	// Input and Output default to the process's stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// Highlighter renders code.
	// Defaults to a terminal highlighter with the plain style.
	Highlighter Highlighter
}

// Run shows the tabs in the terminal until the user quits
// or ctx is cancelled.
// It returns the final tab state.
func Run(ctx context.Context, set tabs.Set, opts Options) (tabs.Set, error) {
	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(New(set, opts.Highlighter), progOpts...).Run()
	if err != nil {
		return set, errtrace.Wrap(err)
	}
	return final.(Model).tabs, nil
}
