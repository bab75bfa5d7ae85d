package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteloft/noteloft/pkg/client"
	"github.com/noteloft/noteloft/pkg/domain"
)

// -- messages --

type notesLoadedMsg struct {
	notes []domain.Note
	err   error
}

type noteCreatedMsg struct {
	note *domain.Note
	err  error
}

type noteDeletedMsg struct {
	id  string
	err error
}

type noteCopiedMsg struct{ err error }

// notesModel lists the caller's notes with a detail pane.
type notesModel struct {
	client  *client.Client
	notes   []domain.Note
	cursor  int
	loading bool
	err     string

	detail    bool
	deleting  bool // delete confirmation showing
	creating  bool
	newTitle  string
	statusMsg string

	width  int
	height int
}

func newNotesModel(c *client.Client) notesModel {
	return notesModel{client: c}
}

func (m notesModel) Init() tea.Cmd {
	return m.load()
}

func (m notesModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		notes, err := c.ListNotes(context.Background(), pageSize, 0)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

// editing reports whether a text input owns the keyboard.
func (m notesModel) editing() bool {
	return m.creating
}

func (m notesModel) Update(msg tea.Msg) (notesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "could not load notes"
			return m, nil
		}
		m.err = ""
		m.notes = msg.notes
		if m.cursor >= len(m.notes) {
			m.cursor = 0
		}
		return m, nil

	case noteCreatedMsg:
		if msg.err != nil {
			m.statusMsg = "failed to create note"
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("created %q", msg.note.Title)
		m.loading = true
		return m, m.load()

	case noteDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "failed to delete note"
			return m, nil
		}
		m.statusMsg = "note deleted"
		m.detail = false
		m.loading = true
		return m, m.load()

	case noteCopiedMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m notesModel) updateKeys(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	key := msg.String()

	if m.creating {
		switch key {
		case "esc":
			m.creating = false
			m.newTitle = ""
		case "enter":
			title := strings.TrimSpace(m.newTitle)
			if title == "" {
				m.statusMsg = "title is required"
				return m, nil
			}
			m.creating = false
			m.newTitle = ""
			c := m.client
			return m, func() tea.Msg {
				note, err := c.CreateNote(context.Background(), client.CreateNoteRequest{Title: title})
				return noteCreatedMsg{note: note, err: err}
			}
		default:
			m.newTitle = editRune(m.newTitle, key)
		}
		return m, nil
	}

	if m.deleting {
		switch key {
		case "y":
			m.deleting = false
			id := m.notes[m.cursor].ID.String()
			c := m.client
			return m, func() tea.Msg {
				return noteDeletedMsg{id: id, err: c.DeleteNote(context.Background(), id)}
			}
		default:
			m.deleting = false
		}
		return m, nil
	}

	m.statusMsg = ""
	switch key {
	case "j", "down":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.notes) > 0 {
			m.detail = true
		}
	case "esc":
		m.detail = false
	case "r":
		m.loading = true
		return m, m.load()
	case "n":
		m.creating = true
	case "d":
		if m.detail && len(m.notes) > 0 {
			m.deleting = true
		}
	case "c":
		if len(m.notes) > 0 {
			body := m.notes[m.cursor].Body
			return m, func() tea.Msg {
				return noteCopiedMsg{err: clipboard.WriteAll(body)}
			}
		}
	}
	return m, nil
}

func (m notesModel) View() string {
	if m.loading {
		return "\n  " + dimStyle.Render("loading notes...")
	}
	if m.err != "" {
		return "\n  " + errorStyle.Render(m.err) + "\n  " + helpEntry("r", "retry")
	}

	if m.detail && m.cursor < len(m.notes) {
		return m.viewDetail(m.notes[m.cursor])
	}

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("My Notes") + "\n\n")

	if m.creating {
		fmt.Fprintf(&b, "  %s %s%s\n\n", inputPromptStyle.Render(">"),
			normalStyle.Render(m.newTitle), accentStyle.Render("█"))
	}

	if len(m.notes) == 0 && !m.creating {
		b.WriteString("  " + dimStyle.Render("no notes yet — press n to create one") + "\n")
	}
	for i, n := range m.notes {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = inputPromptStyle.Render("> ")
			style = selectedStyle
		}
		line := fmt.Sprintf("%s%s  %s", cursor, style.Render(truncateCell(n.Title, 32)),
			dimStyle.Render(n.Preview(40)))
		b.WriteString(line + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n  " + successStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m notesModel) viewDetail(n domain.Note) string {
	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render(n.Title) + "\n")
	b.WriteString("  " + metaStyle.Render(n.UpdatedAt.Format("2006-01-02 15:04")) + "\n\n")
	for _, line := range strings.Split(n.Body, "\n") {
		b.WriteString("  " + normalStyle.Render(line) + "\n")
	}
	if m.deleting {
		b.WriteString("\n  " + errorStyle.Render("delete this note? y/n") + "\n")
	} else if m.statusMsg != "" {
		b.WriteString("\n  " + successStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
