package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// memoModel reads one line of free text. Empty input accepts the default.
type memoModel struct {
	title     string
	def       string
	input     textinput.Model
	styles    Styles
	done      bool
	cancelled bool
}

func newMemoModel(title, def string, styles Styles) memoModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = def
	ti.CharLimit = 500
	ti.Focus()
	return memoModel{title: title, def: def, input: ti, styles: styles}
}

func (m memoModel) Init() tea.Cmd { return textinput.Blink }

func (m memoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(km, keys.Choose):
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the entered memo, or the default when nothing was typed.
func (m memoModel) Value() string {
	if strings.TrimSpace(m.input.Value()) == "" {
		return m.def
	}
	return m.input.Value()
}

func (m memoModel) View() string {
	s := m.styles
	title := s.Title.Render("? " + m.title)
	switch {
	case m.done:
		return fmt.Sprintf("%s %s\n", title, s.Selected.Render(m.Value()))
	case m.cancelled:
		return fmt.Sprintf("%s %s\n", title, s.Muted.Render("cancelled"))
	}
	return fmt.Sprintf("%s %s\n", title, m.input.View())
}
