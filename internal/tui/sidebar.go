package tui

import (
	"fmt"
	"strings"

	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/domain"
)

// sidebarWidth is the rendered width of the navigation rail, borders included.
const sidebarWidth = 22

// renderSidebar draws the navigation rail: the route table with the active
// path highlighted, auth-gated entries dimmed while signed out, and the
// identity footer. Pure presentation; reachability is the guard's job.
func renderSidebar(active string, sess domain.Session, state session.State, height int) string {
	signedIn := state == session.StateAuthenticated

	var b strings.Builder
	b.WriteString(" " + renderLogo() + "\n\n")

	for i, it := range navItems {
		line := fmt.Sprintf(" %s %s  %-12s", keyForIndex(i), it.icon, it.label)
		switch {
		case it.path == active:
			b.WriteString(navActiveStyle.Render(line))
		case it.requiresAuth && !signedIn:
			b.WriteString(navLockedStyle.Render(line))
		default:
			b.WriteString(navItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if signedIn {
		b.WriteString(" " + normalStyle.Render(truncateCell(sess.Email, sidebarWidth-3)) + "\n")
		b.WriteString(" " + metaStyle.Render("free plan") + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("not signed in") + "\n")
		b.WriteString(" " + helpEntry("a", "sign in") + "\n")
	}

	body := b.String()
	lines := strings.Count(body, "\n")
	for ; lines < height-1; lines++ {
		body += "\n"
	}
	return sidebarBorderStyle.Height(height).Width(sidebarWidth - 1).Render(truncateToHeight(body, height))
}

// keyForIndex maps a nav item position to its shortcut key label.
func keyForIndex(i int) string {
	return string(rune('1' + i))
}

// truncateCell clamps s to width runes for fixed-width sidebar cells.
func truncateCell(s string, width int) string {
	runes := []rune(s)
	if width > 0 && len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s
}
