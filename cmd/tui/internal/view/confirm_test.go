package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type confirmedMsg struct{}

type cancelledMsg struct{}

func newTestDialog() ConfirmDialog {
	return NewDeleteDialog(
		func() tea.Msg { return confirmedMsg{} },
		func() tea.Msg { return cancelledMsg{} },
	)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDeleteDialog(t *testing.T) {
	d := newTestDialog()

	assert.True(t, d.Open)
	assert.Equal(t, "Sure?", d.Title)
	assert.Equal(t, "This cannot be undone.", d.Message)
	assert.Equal(t, "Cancel", d.CancelLabel)
	assert.True(t, d.ConfirmFocused())
}

func TestConfirmDialog_Keys(t *testing.T) {
	type testCase struct {
		name     string
		keys     []string
		wantMsg  tea.Msg
		wantOpen bool
	}

	tests := []testCase{
		{name: "EnterConfirmsByDefault", keys: []string{"enter"}, wantMsg: confirmedMsg{}},
		{name: "EscCancels", keys: []string{"esc"}, wantMsg: cancelledMsg{}},
		{name: "NCancels", keys: []string{"n"}, wantMsg: cancelledMsg{}},
		{name: "YConfirms", keys: []string{"y"}, wantMsg: confirmedMsg{}},
		{name: "TabThenEnterCancels", keys: []string{"tab", "enter"}, wantMsg: cancelledMsg{}},
		{name: "LeftRightReturnsToConfirm", keys: []string{"left", "right", "enter"}, wantMsg: confirmedMsg{}},
		{name: "OtherKeysKeepOpen", keys: []string{"x"}, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDialog()

			var cmd tea.Cmd
			for _, k := range tt.keys {
				d, cmd = d.Update(key(k))
			}

			assert.Equal(t, tt.wantOpen, d.Open)

			if tt.wantMsg == nil {
				assert.Nil(t, cmd)
				return
			}

			require.NotNil(t, cmd)
			assert.Equal(t, tt.wantMsg, cmd())
		})
	}
}

func TestConfirmDialog_ClosedIgnoresInput(t *testing.T) {
	d := newTestDialog()
	d, _ = d.Update(key("esc"))
	require.False(t, d.Open)

	d, cmd := d.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.False(t, d.Open)
	assert.Empty(t, d.View())
}

func TestConfirmDialog_NilCallbacks(t *testing.T) {
	d := NewConfirmDialog("Delete category?", "It has 3 transactions.", "Delete all", nil, nil)

	d, cmd := d.Update(key("esc"))

	assert.False(t, d.Open)
	assert.Nil(t, cmd)
}

func TestConfirmDialog_View(t *testing.T) {
	d := NewConfirmDialog("Delete category?", "Groceries has 3 transactions.", "Delete all", nil, nil)

	v := d.View()

	assert.Contains(t, v, "Delete category?")
	assert.Contains(t, v, "Groceries has 3 transactions.")
	assert.Contains(t, v, "Delete all")
	assert.Contains(t, v, "Cancel")
}
