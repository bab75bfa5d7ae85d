package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteloft/noteloft/pkg/client"
	"github.com/noteloft/noteloft/pkg/domain"
)

// maxDocumentSize caps what the shell will read and upload for summarization.
const maxDocumentSize = 4 << 20 // 4 MB

type summaryReadyMsg struct {
	summary *domain.Summary
	err     error
}

type summaryCopiedMsg struct{ err error }

// summarizeModel drives the document summarization panel: a path prompt,
// the in-flight state, and the rendered result. The upload/preview pipeline
// lives server-side; this view only exercises the API boundary.
type summarizeModel struct {
	client *client.Client

	pathInput string
	focused   bool
	working   bool
	err       string
	summary   *domain.Summary
	statusMsg string

	width  int
	height int
}

func newSummarizeModel(c *client.Client) summarizeModel {
	return summarizeModel{client: c, focused: true}
}

func (m summarizeModel) Init() tea.Cmd {
	return nil
}

func (m summarizeModel) editing() bool {
	return m.focused
}

func (m summarizeModel) submit() (summarizeModel, tea.Cmd) {
	if m.working {
		return m, nil
	}
	path := strings.TrimSpace(m.pathInput)
	if path == "" {
		m.err = "enter a file path"
		return m, nil
	}
	m.working = true
	m.err = ""
	m.statusMsg = ""
	c := m.client
	return m, func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return summaryReadyMsg{err: fmt.Errorf("read document: %w", err)}
		}
		if info.Size() > maxDocumentSize {
			return summaryReadyMsg{err: fmt.Errorf("document exceeds %d MB limit", maxDocumentSize>>20)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return summaryReadyMsg{err: fmt.Errorf("read document: %w", err)}
		}
		summary, err := c.Summarize(context.Background(), client.SummarizeRequest{
			Filename: filepath.Base(path),
			Content:  string(data),
		})
		return summaryReadyMsg{summary: summary, err: err}
	}
}

func (m summarizeModel) Update(msg tea.Msg) (summarizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case summaryReadyMsg:
		m.working = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		m.focused = false
		return m, nil

	case summaryCopiedMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "summary copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m summarizeModel) updateKeys(msg tea.KeyMsg) (summarizeModel, tea.Cmd) {
	key := msg.String()

	if m.focused {
		switch key {
		case "esc":
			m.focused = false
		case "enter":
			return m.submit()
		default:
			m.pathInput = editRune(m.pathInput, key)
		}
		return m, nil
	}

	switch key {
	case "enter", "i":
		m.focused = true
	case "c":
		if m.summary != nil {
			text := m.summary.Text
			return m, func() tea.Msg {
				return summaryCopiedMsg{err: clipboard.WriteAll(text)}
			}
		}
	case "x":
		m.summary = nil
		m.pathInput = ""
		m.focused = true
	}
	return m, nil
}

func (m summarizeModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Summarize a document") + "\n\n")

	prompt := dimStyle.Render(m.pathInput)
	if m.focused {
		prompt = normalStyle.Render(m.pathInput) + accentStyle.Render("█")
	}
	if m.pathInput == "" && !m.focused {
		prompt = inputPlaceholderStyle.Render("path to a document...")
	}
	fmt.Fprintf(&b, "  %s %s\n\n", inputPromptStyle.Render(">"), prompt)

	switch {
	case m.working:
		b.WriteString("  " + dimStyle.Render("summarizing...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	case m.summary != nil:
		b.WriteString("  " + selectedStyle.Render(m.summary.Filename) + "\n\n")
		for _, line := range strings.Split(m.summary.Text, "\n") {
			b.WriteString("  " + normalStyle.Render(line) + "\n")
		}
		if len(m.summary.KeyPoints) > 0 {
			b.WriteString("\n  " + sectionHeaderStyle.Render("Key points") + "\n")
			for _, p := range m.summary.KeyPoints {
				b.WriteString("   " + accentStyle.Render("·") + " " + normalStyle.Render(p) + "\n")
			}
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n  " + successStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
