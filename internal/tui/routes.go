package tui

import (
	"github.com/noteloft/noteloft/internal/session"
)

// Route paths. The shell keeps web-style paths so the sidebar, the guard
// and the post-login redirect all speak the same names.
const (
	routeHome      = "/"
	routeNotes     = "/notes"
	routeSummarize = "/summarize"
	routeAccount   = "/account"
	routeAuth      = "/auth"
)

// navItem is a static route descriptor. The table is configuration, not
// derived state; requiresAuth is enforced by resolveRoute.
type navItem struct {
	path         string
	label        string
	icon         string
	requiresAuth bool
}

// navItems is rendered by the sidebar in order. The auth entry route is
// deliberately absent: it is reachable by redirect and by key, not listed.
var navItems = []navItem{
	{path: routeHome, label: "Home", icon: "⌂", requiresAuth: false},
	{path: routeNotes, label: "My Notes", icon: "✎", requiresAuth: true},
	{path: routeSummarize, label: "Summarize", icon: "≡", requiresAuth: true},
	{path: routeAccount, label: "Account", icon: "◉", requiresAuth: true},
}

// routeDecision is the guard's verdict for one navigation request.
// RecordedPath preserves the originally requested path when the request
// was redirected to the auth entry, for the post-login redirect.
type routeDecision struct {
	Allowed      bool
	Path         string
	RecordedPath string
}

// resolveRoute decides reachability for path given the session state.
// It is pure: same inputs, same verdict, no internal state.
// An Unknown session counts as signed out; the startup resolution will
// re-run the guard once it lands.
func resolveRoute(path string, state session.State) routeDecision {
	signedIn := state == session.StateAuthenticated

	if path == routeAuth {
		if signedIn {
			return routeDecision{Allowed: false, Path: routeHome}
		}
		return routeDecision{Allowed: true, Path: path}
	}
	if routeNeedsAuth(path) && !signedIn {
		return routeDecision{Allowed: false, Path: routeAuth, RecordedPath: path}
	}
	return routeDecision{Allowed: true, Path: path}
}

// routeNeedsAuth looks the path up in the route table. Paths the table
// doesn't know are treated as public; the shell only navigates to known
// paths anyway.
func routeNeedsAuth(path string) bool {
	for _, it := range navItems {
		if it.path == path {
			return it.requiresAuth
		}
	}
	return false
}
