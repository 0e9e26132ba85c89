package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// checklistModel picks any number of items, including none.
type checklistModel struct {
	title     string
	labels    []string
	checked   []bool
	page      page
	styles    Styles
	done      bool
	cancelled bool
}

func newChecklistModel(title string, labels []string, pageSize int, styles Styles) checklistModel {
	return checklistModel{
		title:   title,
		labels:  labels,
		checked: make([]bool, len(labels)),
		page:    newPage(len(labels), pageSize),
		styles:  styles,
	}
}

func (m checklistModel) Init() tea.Cmd { return nil }

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, keys.Choose):
		m.done = true
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		m.page.move(-1)
	case key.Matches(km, keys.Down):
		m.page.move(1)
	case key.Matches(km, keys.PageUp):
		m.page.jump(-m.page.size)
	case key.Matches(km, keys.PageDown):
		m.page.jump(m.page.size)
	case key.Matches(km, keys.Toggle):
		if len(m.checked) > 0 {
			m.checked = cloneBools(m.checked)
			m.checked[m.page.cursor] = !m.checked[m.page.cursor]
		}
	case key.Matches(km, keys.ToggleAll):
		all := m.count() == len(m.checked)
		m.checked = cloneBools(m.checked)
		for i := range m.checked {
			m.checked[i] = !all
		}
	case key.Matches(km, keys.Invert):
		m.checked = cloneBools(m.checked)
		for i := range m.checked {
			m.checked[i] = !m.checked[i]
		}
	}
	return m, nil
}

// Selected returns the checked item indexes in list order.
func (m checklistModel) Selected() []int {
	var idx []int
	for i, c := range m.checked {
		if c {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m checklistModel) count() int {
	n := 0
	for _, c := range m.checked {
		if c {
			n++
		}
	}
	return n
}

func (m checklistModel) View() string {
	s := m.styles
	if m.done {
		return fmt.Sprintf("%s %s\n", s.Title.Render("? "+m.title), s.Selected.Render(fmt.Sprintf("%d selected", m.count())))
	}
	if m.cancelled {
		return fmt.Sprintf("%s %s\n", s.Title.Render("? "+m.title), s.Muted.Render("cancelled"))
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("? "+m.title) + "\n")
	b.WriteString(s.Muted.Render("(Press <space> to select, <a> to toggle all, <i> to invert selection)") + "\n")
	from, to := m.page.visible()
	for i := from; i < to; i++ {
		box := "◯ "
		if m.checked[i] {
			box = s.Selected.Render("◉ ")
		}
		line := box + m.labels[i]
		if i == m.page.cursor {
			b.WriteString(s.Cursor.Render("❯") + line + "\n")
		} else {
			b.WriteString(" " + line + "\n")
		}
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d of %d selected", m.count(), len(m.labels))) + "\n")
	return b.String()
}

func cloneBools(b []bool) []bool {
	out := make([]bool, len(b))
	copy(out, b)
	return out
}
