package tui

import (
	"fmt"
	"strings"

	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/domain"
)

// homeModel is the public landing view. It has no remote state of its own;
// it renders a welcome panel that follows the session store.
type homeModel struct {
	sess  domain.Session
	state session.State
	width int
}

func (m homeModel) View() string {
	var b strings.Builder

	switch m.state {
	case session.StateAuthenticated:
		name := m.sess.Email
		if i := strings.IndexByte(name, '@'); i > 0 {
			name = name[:i]
		}
		fmt.Fprintf(&b, "\n  %s\n", selectedStyle.Render("Welcome, "+name+"!"))
		b.WriteString("  " + dimStyle.Render("Create, organize and enhance your notes with AI assistance.") + "\n\n")
		b.WriteString("  " + sectionHeaderStyle.Render("Jump in") + "\n")
		b.WriteString("    " + helpEntry("2", "browse your notes") + "\n")
		b.WriteString("    " + helpEntry("3", "summarize a document") + "\n")
	case session.StateUnknown:
		b.WriteString("\n  " + dimStyle.Render("checking session...") + "\n")
	default:
		fmt.Fprintf(&b, "\n  %s\n", selectedStyle.Render("Welcome to Noteloft"))
		b.WriteString("  " + dimStyle.Render("Upload a document to get an AI-powered summary,") + "\n")
		b.WriteString("  " + dimStyle.Render("or keep your notes in one place.") + "\n\n")
		b.WriteString("  " + accentStyle.Render("Press a to sign in or create an account.") + "\n")
	}
	return b.String()
}
