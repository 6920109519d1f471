// Package auth gates editor writes behind a single admin account. A
// successful login issues a signed session cookie; the middleware verifies
// it and records the outcome in the request context.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the session cookie set by Login.
const CookieName = "admin_token"

// DefaultTTL is the session lifetime when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// ErrInvalidCredentials is returned by Login for a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Config holds the admin account and session settings.
type Config struct {
	Username string
	Password string
	// Secret keys the session signature. When empty a random key is
	// generated, so sessions do not survive a restart.
	Secret string
	TTL    time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Gate issues and verifies admin sessions.
type Gate struct {
	cfg    Config
	secret []byte
	now    func() time.Time
}

// NewGate returns a Gate for cfg.
func NewGate(cfg Config) (*Gate, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
	}
	return &Gate{cfg: cfg, secret: secret, now: time.Now}, nil
}

// Login checks the credentials and returns the session cookie to set.
// An unconfigured account never logs in.
func (g *Gate) Login(username, password string) (*http.Cookie, error) {
	if g.cfg.Username == "" || g.cfg.Password == "" {
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	expires := g.now().Add(g.cfg.TTL)
	return &http.Cookie{
		Name:     CookieName,
		Value:    g.token(username, expires),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(g.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}, nil
}

// Logout returns a cookie that clears the session.
func (g *Gate) Logout() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Verify reports whether token is an unexpired session for the admin.
func (g *Gate) Verify(token string) bool {
	payloadB64, sigB64, found := strings.Cut(token, ".")
	if !found {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return false
	}
	if !hmac.Equal(sig, g.sign(payload)) {
		return false
	}

	user, exp, found := strings.Cut(string(payload), "|")
	if !found || user != g.cfg.Username {
		return false
	}
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return false
	}
	return g.now().Before(time.Unix(unix, 0))
}

// Middleware records in the request context whether the request carries a
// valid session. It never rejects a request itself.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok := false
		if c, err := r.Cookie(CookieName); err == nil {
			ok = g.Verify(c.Value)
		}
		next.ServeHTTP(w, r.WithContext(WithAuthorized(r.Context(), ok)))
	})
}

func (g *Gate) token(username string, expires time.Time) string {
	payload := []byte(username + "|" + strconv.FormatInt(expires.Unix(), 10))
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(g.sign(payload))
}

func (g *Gate) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

type ctxKey struct{}

// WithAuthorized returns a context carrying the authorization outcome.
func WithAuthorized(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, ok)
}

// FromContext reports whether ctx was marked authorized.
func FromContext(ctx context.Context) bool {
	ok, _ := ctx.Value(ctxKey{}).(bool)
	return ok
}

// Session authorizes callers whose context was marked by Middleware.
type Session struct{}

// Authorized reports FromContext(ctx).
func (Session) Authorized(ctx context.Context) bool { return FromContext(ctx) }

// Allow authorizes every caller. The CLI runs with it.
var Allow allowAll

type allowAll struct{}

func (allowAll) Authorized(context.Context) bool { return true }
