package jwt

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultScheme is the Authorization scheme expected in front of the token.
const DefaultScheme = "Bearer"

const localsIdentity = "identity"

var ErrMalformedHeader = errors.New("malformed authorization header")

// Outcome is the terminal result of authenticating one request.
type Outcome int

const (
	Unauthenticated Outcome = iota
	Authenticated
	Malformed
	Expired
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Malformed:
		return "malformed"
	case Expired:
		return "expired"
	case Invalid:
		return "invalid"
	default:
		return "unauthenticated"
	}
}

// Message is the client-facing text for a rejected outcome.
func (o Outcome) Message() string {
	switch o {
	case Malformed:
		return "Invalid token format"
	case Expired:
		return "Token expired"
	case Invalid:
		return "Invalid token"
	case Authenticated:
		return ""
	default:
		return "Authentication required"
	}
}

// Credentials are the token sources found on a request.
type Credentials struct {
	Header       string
	SessionToken string
}

// Decision is the gate verdict. Identity is set only when Outcome is Authenticated.
type Decision struct {
	Outcome  Outcome
	Identity Identity
	Err      error
}

// Verifier validates a raw token at a point in time.
type Verifier interface {
	Verify(token string, now time.Time) (Identity, error)
}

// TokenSource yields the token persisted for the client, if any.
type TokenSource interface {
	Get(c *fiber.Ctx) (string, bool, error)
}

// Gate decides whether a request carries a valid token.
type Gate struct {
	verifier Verifier
	scheme   string
	now      func() time.Time
	log      *slog.Logger
}

type GateOption func(*Gate)

func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

func WithGateLogger(l *slog.Logger) GateOption {
	return func(g *Gate) { g.log = l }
}

func NewGate(verifier Verifier, scheme string, opts ...GateOption) *Gate {
	if scheme == "" {
		scheme = DefaultScheme
	}
	g := &Gate{verifier: verifier, scheme: scheme, now: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ParseAuthorization extracts the token from "<scheme> <token>".
func ParseAuthorization(header, scheme string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return "", ErrMalformedHeader
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedHeader
	}
	return token, nil
}

// Evaluate is free of side effects: a non-empty header always takes
// precedence over the session token.
func (g *Gate) Evaluate(cr Credentials, now time.Time) Decision {
	var token string
	if strings.TrimSpace(cr.Header) != "" {
		t, err := ParseAuthorization(cr.Header, g.scheme)
		if err != nil {
			return Decision{Outcome: Malformed, Err: err}
		}
		token = t
	} else {
		token = cr.SessionToken
	}
	if token == "" {
		return Decision{Outcome: Unauthenticated}
	}

	id, err := g.verifier.Verify(token, now)
	switch {
	case err == nil:
		return Decision{Outcome: Authenticated, Identity: id}
	case errors.Is(err, ErrTokenExpired):
		return Decision{Outcome: Expired, Err: err}
	default:
		return Decision{Outcome: Invalid, Err: err}
	}
}

// Middleware returns a Fiber handler that admits only authenticated requests.
// sessions may be nil, in which case only the Authorization header is used.
func (g *Gate) Middleware(sessions TokenSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cr := Credentials{Header: c.Get(fiber.HeaderAuthorization)}
		if strings.TrimSpace(cr.Header) == "" && sessions != nil {
			token, ok, err := sessions.Get(c)
			if err != nil {
				return err
			}
			if ok {
				cr.SessionToken = token
			}
		}

		d := g.Evaluate(cr, g.now())
		if d.Outcome != Authenticated {
			g.log.DebugContext(c.UserContext(), "request rejected",
				"path", c.Path(), "outcome", d.Outcome.String(), "error", d.Err)
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": d.Outcome.Message()})
		}

		c.Locals(localsIdentity, d.Identity)
		c.SetUserContext(WithIdentity(c.UserContext(), d.Identity))
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by the gate for this request.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(localsIdentity).(Identity)
	return id, ok
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
