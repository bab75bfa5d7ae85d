package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/noteloft/noteloft/internal/auth"
	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/domain"
)

// stubShellGateway satisfies Gateway with recorded calls and no network.
type stubShellGateway struct {
	submitOutcome auth.Outcome
	signOuts      int
	expires       int
}

func (g *stubShellGateway) Submit(context.Context, auth.Attempt) auth.Outcome {
	return g.submitOutcome
}
func (g *stubShellGateway) SignOut(context.Context)        { g.signOuts++ }
func (g *stubShellGateway) ResolveStartup(context.Context) {}
func (g *stubShellGateway) Expire()                        { g.expires++ }

func newTestApp(t *testing.T, width int) App {
	t.Helper()
	a := NewApp(nil, session.NewStore(), &stubShellGateway{}, Options{Breakpoint: 100})
	model, _ := a.Update(tea.WindowSizeMsg{Width: width, Height: 30})
	return model.(App)
}

func step(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func signedIn(t *testing.T, a App) App {
	t.Helper()
	sess := domain.Session{UserID: uuid.New(), Email: "a@b.com", Token: "tok-1"}
	a, _ = step(t, a, sessionChangedMsg{sess: sess, state: session.StateAuthenticated})
	return a
}

func TestAppNavKeysChangeRouteWhenSignedIn(t *testing.T) {
	a := signedIn(t, newTestApp(t, 120))

	a, _ = step(t, a, keyRunes("4"))
	if a.route != routeAccount {
		t.Errorf("route = %q, want %q", a.route, routeAccount)
	}
	a, _ = step(t, a, keyRunes("3"))
	if a.route != routeSummarize {
		t.Errorf("route = %q, want %q", a.route, routeSummarize)
	}
}

func TestAppGuardRedirectsAndRecordsPath(t *testing.T) {
	a := newTestApp(t, 120)
	a, _ = step(t, a, sessionChangedMsg{state: session.StateAnonymous})

	a, _ = step(t, a, keyRunes("2"))
	if a.route != routeAuth {
		t.Fatalf("route = %q, want %q", a.route, routeAuth)
	}
	if a.recordedPath != routeNotes {
		t.Errorf("recordedPath = %q, want %q", a.recordedPath, routeNotes)
	}
}

func TestAppPostLoginConsumesRecordedPath(t *testing.T) {
	a := newTestApp(t, 120)
	a, _ = step(t, a, sessionChangedMsg{state: session.StateAnonymous})
	a, _ = step(t, a, keyRunes("2")) // bounced to the form, /notes recorded

	a = signedIn(t, a) // store notification lands first, kicks off /auth
	if a.route == routeAuth {
		t.Fatal("still on the auth route after sign-in")
	}

	a, _ = step(t, a, navigateMsg{path: routeHome, consumeRecorded: true})
	if a.route != routeNotes {
		t.Errorf("route = %q, want recorded %q", a.route, routeNotes)
	}
	if a.recordedPath != "" {
		t.Errorf("recordedPath = %q, want consumed", a.recordedPath)
	}
}

func TestAppConsumeRecordedFallsBackToTarget(t *testing.T) {
	a := signedIn(t, newTestApp(t, 120))

	a, _ = step(t, a, navigateMsg{path: routeHome, consumeRecorded: true})
	if a.route != routeHome {
		t.Errorf("route = %q, want %q with nothing recorded", a.route, routeHome)
	}
}

func TestAppNarrowSidebarClosesOnRouteChange(t *testing.T) {
	a := signedIn(t, newTestApp(t, 60))
	if !a.narrow() {
		t.Fatal("60 cols should be below the breakpoint")
	}

	a, _ = step(t, a, keyRunes("b"))
	if !a.sidebarOpen {
		t.Fatal("b did not open the sidebar")
	}
	a, _ = step(t, a, keyRunes("4"))
	if a.sidebarOpen {
		t.Error("sidebar stayed open across a narrow route change")
	}
}

func TestAppWideViewAlwaysRendersSidebar(t *testing.T) {
	a := signedIn(t, newTestApp(t, 120))
	if a.sidebarOpen {
		t.Fatal("sidebar boolean should start closed")
	}
	if !strings.Contains(a.View(), "My Notes") {
		t.Error("wide view missing sidebar content with the drawer closed")
	}
}

func TestAppNarrowDrawerReplacesContent(t *testing.T) {
	a := signedIn(t, newTestApp(t, 60))
	a, _ = step(t, a, keyRunes("b"))

	v := a.View()
	if !strings.Contains(v, "My Notes") {
		t.Error("open drawer missing nav content")
	}
}

func TestAppEditingSuppressesGlobalKeys(t *testing.T) {
	a := newTestApp(t, 120)
	a, _ = step(t, a, sessionChangedMsg{state: session.StateAnonymous})
	a, _ = step(t, a, keyRunes("a"))
	if a.route != routeAuth {
		t.Fatal("a did not open the auth route")
	}

	a, _ = step(t, a, keyRunes("1"))
	if a.route != routeAuth {
		t.Errorf("route = %q, nav key leaked through a focused input", a.route)
	}
	if a.authForm.email != "1" {
		t.Errorf("email = %q, want the suppressed key as input", a.authForm.email)
	}
}

func TestAppExpiryIgnoresReplacedSession(t *testing.T) {
	a := signedIn(t, newTestApp(t, 120))

	_, cmd := step(t, a, sessionExpiredMsg{token: "stale-token"})
	if cmd != nil {
		t.Error("timer for a replaced session still fired an expiry")
	}

	_, cmd = step(t, a, sessionExpiredMsg{token: "tok-1"})
	if cmd == nil {
		t.Error("matching token produced no expiry command")
	}
}

func TestAppToastLifecycle(t *testing.T) {
	a := newTestApp(t, 120)

	a, _ = step(t, a, showToastMsg{toast: toast{title: "Saved"}})
	if !a.toast.visible() {
		t.Fatal("toast not visible after show")
	}

	// A tick from a superseded toast is ignored.
	a, _ = step(t, a, toastExpireMsg{seq: a.toast.seq - 1})
	if !a.toast.visible() {
		t.Fatal("stale expiry dismissed the active toast")
	}

	a, _ = step(t, a, toastExpireMsg{seq: a.toast.seq})
	if a.toast.visible() {
		t.Error("toast still visible after its own expiry")
	}
}

func TestAppDismissToastKey(t *testing.T) {
	a := newTestApp(t, 120)
	a, _ = step(t, a, showToastMsg{toast: toast{title: "Saved"}})

	a, _ = step(t, a, keyRunes("x"))
	if a.toast.visible() {
		t.Error("x did not dismiss the toast")
	}
}

func TestAppAbandonsAuthFormOnLeave(t *testing.T) {
	a := newTestApp(t, 120)
	a, _ = step(t, a, sessionChangedMsg{state: session.StateAnonymous})
	a, _ = step(t, a, keyRunes("a"))

	var cmd tea.Cmd
	a.authForm.email = "a@b.com"
	a.authForm.password = "x"
	a.authForm, cmd = a.authForm.submit()
	_ = cmd
	if !a.authForm.submitting {
		t.Fatal("submit did not mark the form in flight")
	}

	a, _ = step(t, a, keyRunes("1")) // nav is suppressed while editing
	if a.route != routeAuth {
		t.Fatal("unexpected route change")
	}
	model, _ := a.navigate(routeHome)
	a = model.(App)
	if a.authForm.submitting {
		t.Error("leaving the auth route did not abandon the submission")
	}
}
