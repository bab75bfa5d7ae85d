package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/noteloft/noteloft/internal/auth"
	"github.com/noteloft/noteloft/pkg/domain"
)

// stubSubmitter scripts gateway outcomes and counts calls.
type stubSubmitter struct {
	outcome auth.Outcome
	calls   int
	last    auth.Attempt
}

func (s *stubSubmitter) Submit(_ context.Context, a auth.Attempt) auth.Outcome {
	s.calls++
	s.last = a
	return s.outcome
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(t *testing.T, m authModel, s string) authModel {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestAuthTypingFillsFocusedField(t *testing.T) {
	m := newAuthModel(&stubSubmitter{}, "")

	m = typeString(t, m, "a@b.com")
	if m.email != "a@b.com" {
		t.Errorf("email = %q, want %q", m.email, "a@b.com")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeString(t, m, "secret")
	if m.password != "secret" {
		t.Errorf("password = %q, want %q", m.password, "secret")
	}
}

func TestAuthSwitchTabPreservesFields(t *testing.T) {
	m := newAuthModel(&stubSubmitter{}, "")
	m.email = "a@b.com"
	m.password = "x"
	m.lastError = "Invalid login credentials"

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.tab != auth.ModeSignup {
		t.Fatalf("tab = %v, want signup", m.tab)
	}
	if m.email != "a@b.com" || m.password != "x" {
		t.Error("tab switch must preserve email and password")
	}
	if m.lastError != "" {
		t.Error("tab switch must clear lastError")
	}
}

func TestAuthSwitchTabBlockedWhileSubmitting(t *testing.T) {
	m := newAuthModel(&stubSubmitter{}, "")
	m.submitting = true

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.tab != auth.ModeLogin {
		t.Error("tab switched during an in-flight submission")
	}
}

func TestAuthDoubleSubmitFiresOneCall(t *testing.T) {
	stub := &stubSubmitter{outcome: auth.Outcome{Reason: "nope"}}
	m := newAuthModel(stub, "")
	m.email = "a@b.com"
	m.password = "x"

	m, cmd1 := m.submit()
	_, cmd2 := m.submit()

	if cmd1 == nil {
		t.Fatal("first submit produced no command")
	}
	if cmd2 != nil {
		t.Fatal("second submit produced a command, want no-op")
	}
	cmd1()
	if stub.calls != 1 {
		t.Errorf("gateway called %d times, want exactly 1", stub.calls)
	}
}

func TestAuthStaleSeqIsDropped(t *testing.T) {
	m := newAuthModel(&stubSubmitter{}, "")
	m, _ = m.submit()

	old := m.seq - 1
	m2, cmd := m.handleResult(authResultMsg{seq: old, outcome: auth.Outcome{OK: true}})
	if cmd != nil {
		t.Error("stale resolution produced a command")
	}
	if !m2.submitting {
		t.Error("stale resolution cleared submitting")
	}
}

func TestAuthStaleOutcomeIsDropped(t *testing.T) {
	m := newAuthModel(&stubSubmitter{}, "")
	m, _ = m.submit()

	m2, cmd := m.handleResult(authResultMsg{seq: m.seq, outcome: auth.Outcome{Stale: true}})
	if cmd != nil {
		t.Error("stale outcome produced a command")
	}
	if !m2.submitting {
		t.Error("stale outcome cleared submitting")
	}
}

func TestAuthAbandonOrphansInFlightResult(t *testing.T) {
	stub := &stubSubmitter{outcome: auth.Outcome{OK: true, Session: &domain.Session{Email: "a@b.com"}}}
	m := newAuthModel(stub, "")
	m.email = "a@b.com"
	m.password = "x"

	m, cmd := m.submit()
	inFlightSeq := m.seq
	m = m.abandon()

	if m.submitting {
		t.Error("abandon left submitting=true")
	}
	// The resolution lands after the user navigated away.
	_ = cmd
	m2, resCmd := m.handleResult(authResultMsg{seq: inFlightSeq, outcome: stub.outcome})
	if resCmd != nil {
		t.Error("abandoned resolution produced a command")
	}
	if m2.lastError != "" || m2.submitting {
		t.Error("abandoned resolution mutated form state")
	}
}

func TestAuthLoginRejectedScenario(t *testing.T) {
	stub := &stubSubmitter{outcome: auth.Outcome{Reason: "Invalid login credentials"}}
	m := newAuthModel(stub, "")
	m.email = "a@b.com"
	m.password = "x"

	m, cmd := m.submit()
	msg := cmd().(authResultMsg)
	if stub.last.Email != "a@b.com" || stub.last.Password != "x" {
		t.Errorf("attempt = %+v", stub.last)
	}

	m, toastCmd := m.handleResult(msg)
	if m.lastError != "Invalid login credentials" {
		t.Errorf("lastError = %q, want the verbatim reason", m.lastError)
	}
	if m.submitting {
		t.Error("submitting still true after terminal outcome")
	}

	raised := toastCmd().(showToastMsg)
	if raised.toast.variant != toastDestructive {
		t.Error("failure toast variant = default, want destructive")
	}
	if raised.toast.title != "Login Failed" {
		t.Errorf("toast title = %q", raised.toast.title)
	}
	if raised.toast.description != "Invalid login credentials" {
		t.Errorf("toast description = %q", raised.toast.description)
	}
}

// drainBatch executes a command tree and collects every produced message.
func drainBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			msgs = append(msgs, drainBatch(t, c)...)
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestAuthSignupSuccessScenario(t *testing.T) {
	sess := &domain.Session{UserID: uuid.New(), Email: "a@b.com"}
	stub := &stubSubmitter{outcome: auth.Outcome{OK: true, Session: sess}}
	m := newAuthModel(stub, "")
	m = m.switchTab(auth.ModeSignup)
	m.name = "Ada"
	m.email = "a@b.com"
	m.password = "x"

	m, cmd := m.submit()
	msg := cmd().(authResultMsg)
	m, after := m.handleResult(msg)

	if m.lastError != "" {
		t.Errorf("lastError = %q, want empty", m.lastError)
	}

	var toasts []showToastMsg
	var navs []navigateMsg
	for _, got := range drainBatch(t, after) {
		switch v := got.(type) {
		case showToastMsg:
			toasts = append(toasts, v)
		case navigateMsg:
			navs = append(navs, v)
		}
	}
	if len(toasts) != 1 {
		t.Fatalf("got %d toasts, want exactly 1", len(toasts))
	}
	if toasts[0].toast.variant != toastDefault || toasts[0].toast.title != "Signup Successful" {
		t.Errorf("toast = %+v", toasts[0].toast)
	}
	if len(navs) != 1 {
		t.Fatalf("got %d navigations, want exactly 1", len(navs))
	}
	if navs[0].path != routeHome || !navs[0].consumeRecorded {
		t.Errorf("navigation = %+v", navs[0])
	}
}

func TestAuthSignupWithoutSessionStaysOnForm(t *testing.T) {
	stub := &stubSubmitter{outcome: auth.Outcome{OK: true}}
	m := newAuthModel(stub, "")
	m = m.switchTab(auth.ModeSignup)
	m.name = "Ada"
	m.email = "a@b.com"
	m.password = "x"

	m, cmd := m.submit()
	msg := cmd().(authResultMsg)
	m, after := m.handleResult(msg)

	if m.tab != auth.ModeLogin {
		t.Error("expected flip to login tab pending verification")
	}
	for _, got := range drainBatch(t, after) {
		if _, ok := got.(navigateMsg); ok {
			t.Error("verification-pending signup must not navigate")
		}
	}
}

func TestAuthEnterOnLastFieldSubmits(t *testing.T) {
	stub := &stubSubmitter{outcome: auth.Outcome{Reason: "nope"}}
	m := newAuthModel(stub, "")
	m.email = "a@b.com"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // email -> password
	if cmd != nil {
		t.Fatal("enter on a middle field must only advance focus")
	}
	if m.focus != 1 {
		t.Fatalf("focus = %d, want 1", m.focus)
	}
	m = typeString(t, m, "x")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // password submits
	if cmd == nil {
		t.Fatal("enter on the last field must submit")
	}
	if !m.submitting {
		t.Error("submitting = false after submit")
	}
}
