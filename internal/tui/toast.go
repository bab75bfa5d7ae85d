package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastVariant selects the notification chrome.
type toastVariant int

const (
	toastDefault toastVariant = iota
	toastDestructive
)

// toast is a one-shot, dismissible notification. Only the most recent one
// is kept; toasts are never queued and never persisted.
type toast struct {
	title       string
	description string
	variant     toastVariant
}

// toastTTL is how long a toast stays up without being dismissed.
const toastTTL = 4 * time.Second

// toastExpireMsg dismisses the toast with the matching seq. A stale seq
// means a newer toast replaced it; the timer is ignored.
type toastExpireMsg struct {
	seq int
}

// showToastMsg raises a notification from any sub-model.
type showToastMsg struct {
	toast toast
}

type toastModel struct {
	current *toast
	seq     int
}

// show replaces the current toast and arms its dismiss timer.
func (m toastModel) show(t toast) (toastModel, tea.Cmd) {
	m.current = &t
	m.seq++
	seq := m.seq
	return m, tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpireMsg{seq: seq}
	})
}

// dismiss drops the toast immediately.
func (m toastModel) dismiss() toastModel {
	m.current = nil
	return m
}

func (m toastModel) expire(msg toastExpireMsg) toastModel {
	if msg.seq == m.seq {
		m.current = nil
	}
	return m
}

func (m toastModel) visible() bool {
	return m.current != nil
}

// View renders the toast as a single chrome line, or "" when absent.
func (m toastModel) View() string {
	if m.current == nil {
		return ""
	}
	text := m.current.title
	if m.current.description != "" {
		text += " — " + m.current.description
	}
	if m.current.variant == toastDestructive {
		return toastDestructiveStyle.Render(text)
	}
	return toastDefaultStyle.Render(text)
}
