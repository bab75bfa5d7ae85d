package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteloft/noteloft/internal/auth"
	"github.com/noteloft/noteloft/internal/browser"
)

// submitter is the slice of the auth gateway the form needs.
type submitter interface {
	Submit(ctx context.Context, a auth.Attempt) auth.Outcome
}

// authResultMsg carries a terminal outcome back to the form. seq ties it to
// the submission that produced it; anything else is a stale resolution.
type authResultMsg struct {
	seq     int
	outcome auth.Outcome
}

// navigateMsg asks the shell to change route. consumeRecorded makes the
// shell prefer the path recorded by the guard before the login redirect.
type navigateMsg struct {
	path            string
	consumeRecorded bool
}

// authModel is the login/signup form: one controller, one field set, a
// tagged mode instead of two half-duplicated forms.
type authModel struct {
	gw      submitter
	siteURL string

	tab      auth.Mode
	email    string
	password string
	name     string
	focus    int

	submitting bool
	lastError  string

	// seq identifies the in-flight submission; bumping it orphans any
	// pending resolution. cancel abandons the network call itself.
	seq    int
	cancel context.CancelFunc

	width int
}

func newAuthModel(gw submitter, siteURL string) authModel {
	return authModel{gw: gw, siteURL: siteURL, tab: auth.ModeLogin}
}

// fieldLabels returns the visible fields for the active tab, in focus order.
func (m authModel) fieldLabels() []string {
	if m.tab == auth.ModeSignup {
		return []string{"name", "email", "password"}
	}
	return []string{"email", "password"}
}

func (m authModel) fieldValue(label string) string {
	switch label {
	case "name":
		return m.name
	case "email":
		return m.email
	default:
		return m.password
	}
}

func (m *authModel) setFieldValue(label, v string) {
	switch label {
	case "name":
		m.name = v
	case "email":
		m.email = v
	default:
		m.password = v
	}
}

// switchTab flips login/signup. Blocked while a submission is in flight;
// clears the last error but keeps every field as entered.
func (m authModel) switchTab(tab auth.Mode) authModel {
	if m.submitting || m.tab == tab {
		return m
	}
	m.tab = tab
	m.lastError = ""
	m.focus = 0
	return m
}

// abandon drops any in-flight submission: the context is canceled and the
// seq bumped so a resolution that already raced past the cancel is still
// ignored. Called by the shell when the user navigates away.
func (m authModel) abandon() authModel {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.submitting {
		m.seq++
		m.submitting = false
	}
	return m
}

// submit fires the gateway call for the active tab. A second submit while
// one is pending is a no-op: exactly one network call per submission.
func (m authModel) submit() (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.seq++
	seq := m.seq

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	attempt := auth.Attempt{
		Mode:     m.tab,
		Email:    strings.TrimSpace(m.email),
		Password: m.password,
		Name:     strings.TrimSpace(m.name),
	}
	gw := m.gw
	return m, func() tea.Msg {
		return authResultMsg{seq: seq, outcome: gw.Submit(ctx, attempt)}
	}
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case authResultMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) handleResult(msg authResultMsg) (authModel, tea.Cmd) {
	if msg.seq != m.seq || msg.outcome.Stale {
		return m, nil
	}
	m.submitting = false
	m.cancel = nil

	o := msg.outcome
	if !o.OK {
		m.lastError = o.Reason
		title := "Login Failed"
		if m.tab == auth.ModeSignup {
			title = "Signup Failed"
		}
		return m, raiseToast(toast{title: title, description: o.Reason, variant: toastDestructive})
	}

	m.lastError = ""
	m.password = ""

	if m.tab == auth.ModeSignup {
		if o.Session == nil {
			// Deployment requires verification: stay put, flip to the
			// login tab for when the confirmation lands.
			m.tab = auth.ModeLogin
			m.focus = 0
			return m, raiseToast(toast{
				title:       "Signup Successful",
				description: "Check your email to confirm your account.",
			})
		}
		return m, tea.Batch(
			raiseToast(toast{title: "Signup Successful", description: "Your account has been created!"}),
			func() tea.Msg { return navigateMsg{path: routeHome, consumeRecorded: true} },
		)
	}

	return m, tea.Batch(
		raiseToast(toast{title: "Login Successful", description: "Welcome back!"}),
		func() tea.Msg { return navigateMsg{path: routeHome, consumeRecorded: true} },
	)
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	fields := m.fieldLabels()

	switch msg.String() {
	case "left":
		return m.switchTab(auth.ModeLogin), nil
	case "right":
		return m.switchTab(auth.ModeSignup), nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(fields)
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(fields)) % len(fields)
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == len(fields)-1 {
			return m.submit()
		}
		m.focus++
		return m, nil
	case "ctrl+o":
		if m.tab == auth.ModeLogin && m.siteURL != "" {
			browser.Open(m.siteURL + "/reset-password") //nolint:errcheck // best-effort browser open
		}
		return m, nil
	case "backspace":
		label := fields[m.focus]
		m.setFieldValue(label, editRune(m.fieldValue(label), "backspace"))
		return m, nil
	default:
		key := msg.String()
		label := fields[m.focus]
		m.setFieldValue(label, editRune(m.fieldValue(label), key))
		return m, nil
	}
}

func raiseToast(t toast) tea.Cmd {
	return func() tea.Msg {
		return showToastMsg{toast: t}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	login := tabInactiveStyle.Render("Login")
	signup := tabInactiveStyle.Render("Signup")
	if m.tab == auth.ModeLogin {
		login = tabActiveStyle.Render("Login")
	} else {
		signup = tabActiveStyle.Render("Signup")
	}
	fmt.Fprintf(&b, "  %s   %s\n\n", login, signup)

	fields := m.fieldLabels()
	for i, label := range fields {
		value := m.fieldValue(label)
		if label == "password" {
			value = maskDots(value)
		}
		cursor := " "
		style := metaStyle
		if i == m.focus && !m.submitting {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
			value += accentStyle.Render("█")
		}
		if m.fieldValue(label) == "" && i != m.focus {
			value = inputPlaceholderStyle.Render(placeholderFor(label))
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-8s", label)), value)
	}

	b.WriteString("\n")
	switch {
	case m.submitting && m.tab == auth.ModeSignup:
		b.WriteString("  " + dimStyle.Render("creating account..."))
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("signing in..."))
	case m.lastError != "":
		b.WriteString("  " + errorStyle.Render(m.lastError))
	}
	b.WriteString("\n")

	if m.tab == auth.ModeLogin {
		b.WriteString("\n  " + metaStyle.Render("Not a member? Press right for signup."))
	} else {
		b.WriteString("\n  " + metaStyle.Render("Already have an account? Press left for login."))
	}
	return b.String()
}

func placeholderFor(label string) string {
	switch label {
	case "name":
		return "Name"
	case "email":
		return "Email Address"
	default:
		return "Password"
	}
}
