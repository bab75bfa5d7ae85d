package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noteloft/noteloft/internal/auth"
	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/client"
	"github.com/noteloft/noteloft/pkg/domain"
)

// Gateway is the auth surface the shell drives. *auth.Gateway satisfies it.
type Gateway interface {
	Submit(ctx context.Context, a auth.Attempt) auth.Outcome
	SignOut(ctx context.Context)
	ResolveStartup(ctx context.Context)
	Expire()
}

// Options tune the shell.
type Options struct {
	// Breakpoint is the width, in columns, at or above which the
	// viewport counts as wide. Zero falls back to 100.
	Breakpoint int
	// SiteURL is the web app base, for flows the terminal can't host.
	SiteURL string
	// Version is shown in the header.
	Version string
}

// sessionChangedMsg delivers a session store notification into the
// update loop.
type sessionChangedMsg struct {
	sess  domain.Session
	state session.State
}

// sessionExpiredMsg fires when the active session's local expiry passes.
// token pins it to the session that armed the timer.
type sessionExpiredMsg struct {
	token string
}

// App is the root Bubbletea model: responsive chrome, route state, and the
// per-view sub-models.
type App struct {
	client  *client.Client
	store   *session.Store
	gw      Gateway
	version string
	siteURL string

	route        string
	recordedPath string

	sidebarOpen bool
	breakpoint  int
	width       int
	height      int

	sess      domain.Session
	sessState session.State
	sessCh    chan sessionChangedMsg

	home      homeModel
	notes     notesModel
	summarize summarizeModel
	account   accountModel
	authForm  authModel
	toast     toastModel
}

// NewApp creates the shell and subscribes it to the session store. The
// subscription lives for the process; there is no teardown short of exit.
func NewApp(c *client.Client, store *session.Store, gw Gateway, opts Options) App {
	bp := opts.Breakpoint
	if bp <= 0 {
		bp = 100
	}
	a := App{
		client:     c,
		store:      store,
		gw:         gw,
		version:    opts.Version,
		siteURL:    opts.SiteURL,
		route:      routeHome,
		breakpoint: bp,
		notes:      newNotesModel(c),
		summarize:  newSummarizeModel(c),
		account:    newAccountModel(gw),
		authForm:   newAuthModel(gw, opts.SiteURL),
		sessCh:     make(chan sessionChangedMsg, 16),
	}
	ch := a.sessCh
	store.OnChange(func(s domain.Session, st session.State) {
		ch <- sessionChangedMsg{sess: s, state: st}
	})
	return a
}

func (a App) Init() tea.Cmd {
	gw := a.gw
	return tea.Batch(
		waitForSession(a.sessCh),
		func() tea.Msg {
			gw.ResolveStartup(context.Background())
			return nil
		},
	)
}

// waitForSession relays the next store notification; re-armed after every
// delivery so none are missed.
func waitForSession(ch <-chan sessionChangedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// narrow reports whether the viewport is below the breakpoint. The sidebar
// boolean is only authoritative here; wide viewports always show it.
func (a App) narrow() bool {
	return a.width > 0 && a.width < a.breakpoint
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + toast(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: a.bodyWidth(), Height: msg.Height - 3}
		a.home.width = bodyMsg.Width
		a.notes, _ = a.notes.Update(bodyMsg)
		a.summarize, _ = a.summarize.Update(bodyMsg)
		a.account, _ = a.account.Update(bodyMsg)
		a.authForm, _ = a.authForm.Update(bodyMsg)
		return a, nil

	case sessionChangedMsg:
		return a.applySession(msg)

	case sessionExpiredMsg:
		return a.expireSession(msg)

	case showToastMsg:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.show(msg.toast)
		return a, cmd

	case toastExpireMsg:
		a.toast = a.toast.expire(msg)
		return a, nil

	case navigateMsg:
		target := msg.path
		if msg.consumeRecorded && a.recordedPath != "" {
			target = a.recordedPath
			a.recordedPath = ""
		}
		return a.navigate(target)

	case authResultMsg:
		// Always routed to the form, active or not: the seq/stale guard
		// decides whether the resolution still matters.
		var cmd tea.Cmd
		a.authForm, cmd = a.authForm.handleResult(msg)
		return a, cmd

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return a.routeToView(msg)
}

// applySession ingests a store notification: chrome identity, sub-model
// propagation, guard re-check, and the local expiry timer.
func (a App) applySession(msg sessionChangedMsg) (tea.Model, tea.Cmd) {
	a.sess = msg.sess
	a.sessState = msg.state
	a.home.sess = msg.sess
	a.home.state = msg.state
	a.account.sess = msg.sess
	a.account.state = msg.state

	cmds := []tea.Cmd{waitForSession(a.sessCh)}

	// A session change can make the current route unreachable.
	if dec := resolveRoute(a.route, a.sessState); !dec.Allowed {
		if dec.RecordedPath != "" {
			a.recordedPath = dec.RecordedPath
		}
		model, cmd := a.navigate(dec.Path)
		return model, tea.Batch(append(cmds, cmd)...)
	}

	if msg.state == session.StateAuthenticated && !msg.sess.ExpiresAt.IsZero() {
		token := msg.sess.Token
		until := time.Until(msg.sess.ExpiresAt)
		if until < 0 {
			until = 0
		}
		cmds = append(cmds, tea.Tick(until, func(time.Time) tea.Msg {
			return sessionExpiredMsg{token: token}
		}))
	}
	return a, tea.Batch(cmds...)
}

func (a App) expireSession(msg sessionExpiredMsg) (tea.Model, tea.Cmd) {
	if a.sessState != session.StateAuthenticated || a.sess.Token != msg.token {
		// Timer from a session that was already replaced or cleared.
		return a, nil
	}
	gw := a.gw
	return a, tea.Batch(
		func() tea.Msg {
			gw.Expire()
			return nil
		},
		raiseToast(toast{title: "Session expired", description: "Please sign in again.", variant: toastDestructive}),
	)
}

// handleGlobalKeys covers chrome-level keys. Suppressed while a text input
// owns the keyboard, except ctrl+c.
func (a App) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit, true
	}
	if a.isEditing() {
		return a, nil, false
	}

	if a.toast.visible() && key == "x" {
		a.toast = a.toast.dismiss()
		return a, nil, true
	}

	switch key {
	case "q":
		return a, tea.Quit, true
	case "b":
		a.sidebarOpen = !a.sidebarOpen
		return a, nil, true
	case "a":
		model, cmd := a.navigate(routeAuth)
		return model, cmd, true
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(navItems) {
			model, cmd := a.navigate(navItems[idx].path)
			return model, cmd, true
		}
	}
	return a, nil, false
}

// navigate runs the guard and commits the route change. Any change while
// narrow closes the sidebar so a stale drawer can't obscure the next page.
func (a App) navigate(path string) (tea.Model, tea.Cmd) {
	dec := resolveRoute(path, a.sessState)
	if !dec.Allowed {
		if dec.RecordedPath != "" {
			a.recordedPath = dec.RecordedPath
		}
		path = dec.Path
	}

	if a.route == routeAuth && path != routeAuth {
		a.authForm = a.authForm.abandon()
	}

	changed := path != a.route
	a.route = path
	if changed && a.narrow() {
		a.sidebarOpen = false
	}

	var cmd tea.Cmd
	if changed && path == routeNotes {
		a.notes.loading = true
		cmd = a.notes.Init()
	}
	return a, cmd
}

// isEditing reports whether the active view has a focused text input,
// which suppresses global navigation keys.
func (a App) isEditing() bool {
	switch a.route {
	case routeAuth:
		return true
	case routeNotes:
		return a.notes.editing()
	case routeSummarize:
		return a.summarize.editing()
	}
	return false
}

func (a App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case routeNotes:
		a.notes, cmd = a.notes.Update(msg)
	case routeSummarize:
		a.summarize, cmd = a.summarize.Update(msg)
	case routeAccount:
		a.account, cmd = a.account.Update(msg)
	case routeAuth:
		a.authForm, cmd = a.authForm.Update(msg)
	}
	return a, cmd
}

// bodyWidth is the content width after the sidebar, when one is docked.
func (a App) bodyWidth() int {
	if a.narrow() {
		return a.width
	}
	return a.width - sidebarWidth
}

func (a App) View() string {
	header := " " + renderLogo()
	if a.version != "" {
		header += " " + metaStyle.Render(a.version)
	}
	switch a.sessState {
	case session.StateAuthenticated:
		header += "  " + dimStyle.Render(a.sess.Email)
	case session.StateAnonymous:
		header += "  " + metaStyle.Render("signed out")
	}

	bodyHeight := a.height - 3
	var body string
	content := a.activeView()
	switch {
	case !a.narrow():
		// Wide: the sidebar is always visible, whatever the boolean says.
		sidebar := renderSidebar(a.route, a.sess, a.sessState, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	case a.sidebarOpen:
		// Narrow: the open drawer replaces the page under it.
		body = renderSidebar(a.route, a.sess, a.sessState, bodyHeight)
	default:
		body = content
	}
	body = strings.TrimRight(truncateToHeight(body, bodyHeight), "\n")

	toastLine := a.toast.View()
	return header + "\n" + body + "\n" + toastLine + "\n" + a.helpBar()
}

func (a App) activeView() string {
	switch a.route {
	case routeNotes:
		return a.notes.View()
	case routeSummarize:
		return a.summarize.View()
	case routeAccount:
		return a.account.View()
	case routeAuth:
		return a.authForm.View()
	default:
		return a.home.View()
	}
}

func (a App) helpBar() string {
	base := helpEntry("1-4", "nav") + "  " + helpEntry("b", "sidebar")
	var extra string
	switch a.route {
	case routeAuth:
		extra = helpEntry("←/→", "tab") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+o", "reset password")
	case routeNotes:
		if a.notes.editing() {
			extra = helpEntry("enter", "create") + "  " + helpEntry("esc", "cancel")
		} else {
			extra = helpEntry("j/k", "move") + "  " + helpEntry("enter", "open") + "  " + helpEntry("n", "new") + "  " + helpEntry("c", "copy")
		}
	case routeSummarize:
		if a.summarize.editing() {
			extra = helpEntry("enter", "summarize") + "  " + helpEntry("esc", "done")
		} else {
			extra = helpEntry("i", "edit path") + "  " + helpEntry("c", "copy") + "  " + helpEntry("x", "clear")
		}
	case routeAccount:
		extra = helpEntry("o", "sign out")
	default:
		if a.sessState == session.StateAuthenticated {
			extra = helpEntry("q", "quit")
		} else {
			extra = helpEntry("a", "sign in") + "  " + helpEntry("q", "quit")
		}
	}
	if a.toast.visible() {
		extra += "  " + helpEntry("x", "dismiss")
	}
	return " " + base + "  " + extra
}
