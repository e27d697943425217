// Package historytui is a full-screen picker over committed history
// entries (as loaded from histstore), built on bubbletea/bubbles/lipgloss
// the way the teacher's own session browser was. Filtering is explicitly
// disabled: this is a scroll-and-pick UI, not a search box, keeping it
// clear of the "search-in-history" Non-goal the core spec carries.
package historytui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type entryItem struct {
	index int
	line  string
}

func (e entryItem) Title() string       { return fmt.Sprintf("%4d  %s", e.index+1, e.line) }
func (e entryItem) Description() string { return "" }
func (e entryItem) FilterValue() string { return e.line }

// Model is a bubbletea program model wrapping a bubbles/list of history
// entries, newest first.
type Model struct {
	list     list.Model
	selected *string
	quitting bool
}

// New builds a Model over lines (as returned by histstore.Store.Load),
// newest entry shown first.
func New(lines []string) Model {
	items := make([]list.Item, len(lines))
	for i, line := range lines {
		items[len(lines)-1-i] = entryItem{index: i, line: line}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Command history"
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFF")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)

	return Model{list: l}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update satisfies tea.Model, handling q/ctrl+c to quit and enter to
// select the highlighted entry.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(entryItem); ok {
				line := it.line
				m.selected = &line
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		h, v := lipgloss.NewStyle().Margin(1, 2).GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(m.list.View())
}

// Selected returns the line the user picked with Enter, if any.
func (m Model) Selected() (string, bool) {
	if m.selected == nil {
		return "", false
	}
	return *m.selected, true
}
