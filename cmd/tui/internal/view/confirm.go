package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmDialog is a modal yes/no prompt. The owning view forwards messages
// to it while it is open and renders it in place of its own content.
type ConfirmDialog struct {
	Open         bool
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string

	OnConfirm tea.Cmd
	OnCancel  tea.Cmd

	cancelFocused bool
}

func NewConfirmDialog(title, message, confirmLabel string, onConfirm, onCancel tea.Cmd) ConfirmDialog {
	return ConfirmDialog{
		Open:         true,
		Title:        title,
		Message:      message,
		ConfirmLabel: confirmLabel,
		CancelLabel:  "Cancel",
		OnConfirm:    onConfirm,
		OnCancel:     onCancel,
	}
}

// NewDeleteDialog is the standard "Sure?" prompt in front of a delete.
func NewDeleteDialog(onConfirm, onCancel tea.Cmd) ConfirmDialog {
	return NewConfirmDialog("Sure?", "This cannot be undone.", "Delete", onConfirm, onCancel)
}

// ConfirmFocused reports whether the confirm button has focus.
func (d ConfirmDialog) ConfirmFocused() bool {
	return !d.cancelFocused
}

func (d ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	if !d.Open {
		return d, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "n":
		return d.cancel()
	case "y":
		return d.confirm()
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.cancelFocused = !d.cancelFocused
	case "enter", " ":
		if d.cancelFocused {
			return d.cancel()
		}

		return d.confirm()
	}

	return d, nil
}

func (d ConfirmDialog) confirm() (ConfirmDialog, tea.Cmd) {
	d.Open = false
	return d, d.OnConfirm
}

func (d ConfirmDialog) cancel() (ConfirmDialog, tea.Cmd) {
	d.Open = false
	return d, d.OnCancel
}

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2)
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("203")).
				Bold(true)
)

func (d ConfirmDialog) View() string {
	if !d.Open {
		return ""
	}

	confirmBtn, cancelBtn := activeButtonStyle, buttonStyle
	if d.cancelFocused {
		confirmBtn, cancelBtn = buttonStyle, activeButtonStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		cancelBtn.Render(d.CancelLabel),
		"  ",
		confirmBtn.Render(d.ConfirmLabel),
	)

	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(d.Title),
		"",
		d.Message,
		"",
		buttons,
		"",
		faintStyle.Render("←/→ switch • enter select • esc cancel"),
	))
}
