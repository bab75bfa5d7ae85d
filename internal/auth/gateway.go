// Package auth is the boundary between UI intents and the remote
// authentication service. It validates input, normalizes every result into
// an Outcome, and owns the side effects on the session store and the
// persisted token. Nothing here retries automatically; each failure is
// surfaced once and the user decides whether to resubmit.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/pkg/client"
	"github.com/noteloft/noteloft/pkg/domain"
)

// Mode tags an authentication attempt.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Attempt is the transient value submitted by the auth form. It is consumed
// synchronously and never stored.
type Attempt struct {
	Mode     Mode
	Email    string
	Password string
	Name     string
}

// Outcome is the terminal result of an attempt. Reason is only set on
// failure and carries the service's message verbatim when one exists.
// A successful signup may carry a nil Session when the deployment requires
// a follow-up verification step.
//
// Stale marks a resolution that arrived after the caller abandoned the
// attempt (its context was canceled). Stale outcomes have no side effects
// and must be dropped silently, never surfaced.
type Outcome struct {
	OK      bool
	Session *domain.Session
	Reason  string
	Stale   bool
}

// Service is the remote auth surface the gateway consumes. *client.Client
// satisfies it.
type Service interface {
	SignInWithPassword(ctx context.Context, email, password string) (*client.AuthPayload, error)
	SignUp(ctx context.Context, req client.SignUpRequest) (*client.AuthPayload, error)
	SignOut(ctx context.Context) error
	GetMe(ctx context.Context) (*domain.Account, error)
	SetToken(token string)
}

// TokenStore persists the session token across shell restarts.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// Options tune gateway behavior.
type Options struct {
	// SignupAutoSession establishes a session immediately on successful
	// signup. Off, signup succeeds without signing the user in.
	SignupAutoSession bool

	// RatePerMinute and Burst shape the local limiter on mutating auth
	// calls. Zero values fall back to 10/min with burst 5.
	RatePerMinute int
	Burst         int
}

// Gateway wraps the remote auth operations.
type Gateway struct {
	svc         Service
	store       *session.Store
	tokens      TokenStore
	limiter     *rate.Limiter
	log         *slog.Logger
	autoSession bool
}

// NewGateway wires a gateway against the given service and session store.
// logger may not be nil; pass a discard logger when logging is off.
func NewGateway(svc Service, store *session.Store, tokens TokenStore, logger *slog.Logger, opts Options) *Gateway {
	perMin := opts.RatePerMinute
	if perMin <= 0 {
		perMin = 10
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}
	return &Gateway{
		svc:         svc,
		store:       store,
		tokens:      tokens,
		limiter:     rate.NewLimiter(rate.Limit(float64(perMin)/60.0), burst),
		log:         logger,
		autoSession: opts.SignupAutoSession,
	}
}

// Submit dispatches an attempt to the matching operation.
func (g *Gateway) Submit(ctx context.Context, a Attempt) Outcome {
	if a.Mode == ModeSignup {
		return g.SignUp(ctx, a.Email, a.Password, a.Name)
	}
	return g.SignIn(ctx, a.Email, a.Password)
}

// SignIn exchanges credentials for a session. On success the session store
// is updated and the token persisted before returning.
func (g *Gateway) SignIn(ctx context.Context, email, password string) Outcome {
	if reason := requireFields(email, password); reason != "" {
		return Outcome{Reason: reason}
	}
	if !g.limiter.Allow() {
		return Outcome{Reason: "too many attempts, slow down"}
	}

	payload, err := g.svc.SignInWithPassword(ctx, email, password)
	if ctx.Err() != nil {
		// Abandoned while in flight: drop the resolution, whatever it was.
		return Outcome{Stale: true}
	}
	if err != nil {
		g.log.Warn("sign-in failed", "email", email, "err", err)
		return Outcome{Reason: failureReason(err)}
	}
	sess := g.adopt(payload)
	return Outcome{OK: true, Session: sess}
}

// SignUp creates an account, attaching name as profile metadata. Whether
// the new account is signed in right away depends on SignupAutoSession and
// on the service actually returning a token.
func (g *Gateway) SignUp(ctx context.Context, email, password, name string) Outcome {
	if reason := requireFields(email, password); reason != "" {
		return Outcome{Reason: reason}
	}
	if name == "" {
		return Outcome{Reason: "name is required"}
	}
	if !g.limiter.Allow() {
		return Outcome{Reason: "too many attempts, slow down"}
	}

	req := client.SignUpRequest{
		Email:    email,
		Password: password,
		Metadata: map[string]string{"username": name},
	}
	payload, err := g.svc.SignUp(ctx, req)
	if ctx.Err() != nil {
		return Outcome{Stale: true}
	}
	if err != nil {
		g.log.Warn("sign-up failed", "email", email, "err", err)
		return Outcome{Reason: failureReason(err)}
	}
	if !g.autoSession || payload.AccessToken == "" {
		return Outcome{OK: true}
	}
	sess := g.adopt(payload)
	return Outcome{OK: true, Session: sess}
}

// SignOut clears local session state unconditionally. The remote revocation
// is best effort: a failure there is logged and never blocks the local
// clear, since a stale signed-in state against user intent is the worse bug.
func (g *Gateway) SignOut(ctx context.Context) {
	if err := g.svc.SignOut(ctx); err != nil {
		g.log.Warn("remote sign-out failed, clearing local session anyway", "err", err)
	}
	g.svc.SetToken("")
	if err := g.tokens.Clear(); err != nil {
		g.log.Warn("clear persisted token", "err", err)
	}
	g.store.Clear()
}

// Expire clears the session after local expiry, without a remote call.
func (g *Gateway) Expire() {
	g.svc.SetToken("")
	if err := g.tokens.Clear(); err != nil {
		g.log.Warn("clear persisted token", "err", err)
	}
	g.store.Clear()
	g.log.Info("session expired locally")
}

// ResolveStartup checks the persisted token against the service and moves
// the session store out of its Unknown state. Transient errors resolve to
// anonymous but keep the token for the next start; a 401 discards it.
func (g *Gateway) ResolveStartup(ctx context.Context) {
	token, err := g.tokens.Load()
	if err != nil || token == "" {
		g.store.Resolve(nil)
		return
	}
	g.svc.SetToken(token)

	me, err := g.svc.GetMe(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			g.svc.SetToken("")
			if cerr := g.tokens.Clear(); cerr != nil {
				g.log.Warn("clear rejected token", "err", cerr)
			}
		} else {
			g.log.Warn("startup session check failed", "err", err)
		}
		g.store.Resolve(nil)
		return
	}

	g.store.Resolve(&domain.Session{
		UserID:    me.ID,
		Email:     me.Email,
		Token:     token,
		ExpiresAt: tokenExpiry(token),
	})
}

// adopt turns a successful auth payload into the active session.
func (g *Gateway) adopt(p *client.AuthPayload) *domain.Session {
	sess := &domain.Session{
		UserID:    p.User.ID,
		Email:     p.User.Email,
		Token:     p.AccessToken,
		ExpiresAt: tokenExpiry(p.AccessToken),
	}
	g.svc.SetToken(p.AccessToken)
	if err := g.tokens.Save(p.AccessToken); err != nil {
		g.log.Warn("persist token", "err", err)
	}
	g.store.Set(sess)
	return sess
}

// requireFields catches empty required fields before any network call.
func requireFields(email, password string) string {
	if email == "" {
		return "email is required"
	}
	if password == "" {
		return "password is required"
	}
	return ""
}

// failureReason extracts a user-facing message from a service error.
// API rejections keep the service's text verbatim; transport errors get a
// generic line because raw dial/timeout strings help nobody.
func failureReason(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Reason()
	}
	return "could not reach the server, try again"
}

// tokenExpiry reads the exp claim from a JWT access token without verifying
// the signature. The backend is authoritative; the claim only schedules
// local expiry. Opaque tokens get no local expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
