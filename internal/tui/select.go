package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// selectModel picks exactly one item from a list.
type selectModel struct {
	title     string
	labels    []string
	page      page
	styles    Styles
	chosen    int
	cancelled bool
}

func newSelectModel(title string, labels []string, pageSize int, styles Styles) selectModel {
	return selectModel{
		title:  title,
		labels: labels,
		page:   newPage(len(labels), pageSize),
		styles: styles,
		chosen: -1,
	}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		m.page.move(-1)
	case key.Matches(km, keys.Down):
		m.page.move(1)
	case key.Matches(km, keys.PageUp):
		m.page.jump(-m.page.size)
	case key.Matches(km, keys.PageDown):
		m.page.jump(m.page.size)
	case key.Matches(km, keys.Choose):
		if len(m.labels) > 0 {
			m.chosen = m.page.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	s := m.styles
	if m.chosen >= 0 {
		return fmt.Sprintf("%s %s\n", s.Title.Render("? "+m.title), s.Selected.Render(m.labels[m.chosen]))
	}
	if m.cancelled {
		return fmt.Sprintf("%s %s\n", s.Title.Render("? "+m.title), s.Muted.Render("cancelled"))
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("? "+m.title) + "\n")
	from, to := m.page.visible()
	for i := from; i < to; i++ {
		if i == m.page.cursor {
			b.WriteString(s.Cursor.Render("❯ "+m.labels[i]) + "\n")
		} else {
			b.WriteString("  " + m.labels[i] + "\n")
		}
	}
	if len(m.labels) > m.page.size {
		b.WriteString(s.Muted.Render("(↑/↓ to move, more above/below)") + "\n")
	}
	return b.String()
}
