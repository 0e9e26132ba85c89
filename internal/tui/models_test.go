package tui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyPgDn  = tea.KeyMsg{Type: tea.KeyPgDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plainStyles() Styles {
	return NewStyles(&bytes.Buffer{}, Default)
}

func send[M tea.Model](t *testing.T, m M, msgs ...tea.Msg) M {
	t.Helper()
	var cur tea.Model = m
	for _, msg := range msgs {
		cur, _ = cur.Update(msg)
	}
	out, ok := cur.(M)
	require.True(t, ok)
	return out
}

func TestPage(t *testing.T) {
	p := newPage(5, 2)
	p.move(-1)
	assert.Equal(t, 4, p.cursor)
	from, to := p.visible()
	assert.Equal(t, []int{3, 5}, []int{from, to})

	p.move(1)
	assert.Equal(t, 0, p.cursor)
	assert.Equal(t, 0, p.offset)

	p.jump(10)
	assert.Equal(t, 4, p.cursor)
	p.jump(-3)
	assert.Equal(t, 1, p.cursor)
}

func TestSelectModel(t *testing.T) {
	labels := []string{"alpha", "beta", "gamma"}

	t.Run("choose after moving", func(t *testing.T) {
		m := send(t, newSelectModel("Pick", labels, 10, plainStyles()), keyDown, keyDown, keyEnter)
		assert.Equal(t, 2, m.chosen)
		assert.False(t, m.cancelled)
		assert.Contains(t, m.View(), "gamma")
	})

	t.Run("wraps at the top", func(t *testing.T) {
		m := send(t, newSelectModel("Pick", labels, 10, plainStyles()), keyUp, keyEnter)
		assert.Equal(t, 2, m.chosen)
	})

	t.Run("cancel", func(t *testing.T) {
		m := send(t, newSelectModel("Pick", labels, 10, plainStyles()), keyDown, keyEsc)
		assert.True(t, m.cancelled)
		assert.Equal(t, -1, m.chosen)
	})

	t.Run("enter on empty list does nothing", func(t *testing.T) {
		m := send(t, newSelectModel("Pick", nil, 10, plainStyles()), keyEnter)
		assert.Equal(t, -1, m.chosen)
		assert.False(t, m.cancelled)
	})

	t.Run("view pages", func(t *testing.T) {
		m := send(t, newSelectModel("Pick", labels, 2, plainStyles()), keyPgDn)
		view := m.View()
		assert.Contains(t, view, "❯ gamma")
		assert.NotContains(t, view, "alpha")
	})

	t.Run("quits on choose", func(t *testing.T) {
		_, cmd := newSelectModel("Pick", labels, 10, plainStyles()).Update(keyEnter)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestChecklistModel(t *testing.T) {
	labels := []string{"a row", "b row", "c row", "d row"}
	newModel := func() checklistModel {
		return newChecklistModel("Rows", labels, 10, plainStyles())
	}

	t.Run("toggle rows", func(t *testing.T) {
		m := send(t, newModel(), keySpace, keyDown, keyDown, keySpace, keyEnter)
		assert.True(t, m.done)
		assert.Equal(t, []int{0, 2}, m.Selected())
	})

	t.Run("toggle twice unselects", func(t *testing.T) {
		m := send(t, newModel(), keySpace, keySpace, keyEnter)
		assert.Empty(t, m.Selected())
	})

	t.Run("toggle all and back", func(t *testing.T) {
		m := send(t, newModel(), runes("a"))
		assert.Equal(t, []int{0, 1, 2, 3}, m.Selected())
		m = send(t, m, runes("a"))
		assert.Empty(t, m.Selected())
	})

	t.Run("toggle all from partial selects all", func(t *testing.T) {
		m := send(t, newModel(), keySpace, runes("a"))
		assert.Equal(t, []int{0, 1, 2, 3}, m.Selected())
	})

	t.Run("invert", func(t *testing.T) {
		m := send(t, newModel(), keySpace, runes("i"))
		assert.Equal(t, []int{1, 2, 3}, m.Selected())
	})

	t.Run("selection is ascending regardless of order", func(t *testing.T) {
		m := send(t, newModel(), keyUp, keySpace, keyUp, keyUp, keySpace, keyEnter)
		assert.Equal(t, []int{1, 3}, m.Selected())
	})

	t.Run("confirm with nothing selected", func(t *testing.T) {
		m := send(t, newModel(), keyEnter)
		assert.True(t, m.done)
		assert.Empty(t, m.Selected())
	})

	t.Run("cancel", func(t *testing.T) {
		m := send(t, newModel(), keySpace, keyEsc)
		assert.True(t, m.cancelled)
		assert.False(t, m.done)
	})

	t.Run("view counts", func(t *testing.T) {
		m := send(t, newModel(), keySpace)
		assert.Contains(t, m.View(), "1 of 4 selected")
		m = send(t, m, keyEnter)
		assert.Contains(t, m.View(), "1 selected")
	})
}

func TestMemoModel(t *testing.T) {
	const def = "Split transaction with 2 items"

	t.Run("empty accepts default", func(t *testing.T) {
		m := send(t, newMemoModel("Memo", def, plainStyles()), keyEnter)
		assert.True(t, m.done)
		assert.Equal(t, def, m.Value())
	})

	t.Run("typed memo", func(t *testing.T) {
		m := send(t, newMemoModel("Memo", def, plainStyles()), runes("Costco"), keyEnter)
		assert.Equal(t, "Costco", m.Value())
	})

	t.Run("whitespace falls back to default", func(t *testing.T) {
		m := send(t, newMemoModel("Memo", def, plainStyles()), runes("   "), keyEnter)
		assert.Equal(t, def, m.Value())
	})

	t.Run("cancel", func(t *testing.T) {
		m := send(t, newMemoModel("Memo", def, plainStyles()), runes("x"), keyEsc)
		assert.True(t, m.cancelled)
	})
}
