package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/domain"
)

// signOuter is the slice of the auth gateway the account view needs.
type signOuter interface {
	SignOut(ctx context.Context)
}

// signedOutMsg fires once the gateway finished clearing the session.
type signedOutMsg struct{}

// accountModel shows the signed-in identity and owns the sign-out action.
type accountModel struct {
	gw      signOuter
	sess    domain.Session
	state   session.State
	pending bool
	width   int
}

func newAccountModel(gw signOuter) accountModel {
	return accountModel{gw: gw}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case signedOutMsg:
		m.pending = false
		return m, tea.Batch(
			raiseToast(toast{title: "Signed out", description: "See you next time."}),
			func() tea.Msg { return navigateMsg{path: routeHome} },
		)

	case tea.KeyMsg:
		if msg.String() == "o" && !m.pending && m.state == session.StateAuthenticated {
			m.pending = true
			gw := m.gw
			return m, func() tea.Msg {
				// Local clear always wins; remote failure is logged by
				// the gateway and never blocks this.
				gw.SignOut(context.Background())
				return signedOutMsg{}
			}
		}
	}
	return m, nil
}

func (m accountModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Account") + "\n\n")

	if m.state != session.StateAuthenticated {
		b.WriteString("  " + dimStyle.Render("not signed in") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("email"), normalStyle.Render(m.sess.Email))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("plan "), normalStyle.Render("free"))
	if !m.sess.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("until"),
			dimStyle.Render(m.sess.ExpiresAt.Format("2006-01-02 15:04")))
	}

	b.WriteString("\n")
	if m.pending {
		b.WriteString("  " + dimStyle.Render("signing out...") + "\n")
	} else {
		b.WriteString("  " + helpEntry("o", "sign out") + "\n")
	}
	return b.String()
}
