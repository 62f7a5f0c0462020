// Package session persists the current bearer token for browser clients
// between requests using a server-side session keyed by a cookie.
package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	DefaultExpiration = 24 * time.Hour
	DefaultCookieName = "session_id"
	tokenKey          = "token"
)

type Config struct {
	Expiration   time.Duration
	CookieName   string
	CookieSecure bool
	// Storage defaults to fiber's in-memory storage when nil.
	Storage fiber.Storage
}

// Adapter keeps at most one token per client session.
type Adapter struct {
	store *session.Store
}

func New(cfg Config) *Adapter {
	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultExpiration
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &Adapter{store: session.New(session.Config{
		Expiration:     cfg.Expiration,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})}
}

// Set replaces the session token and rotates the session id.
func (a *Adapter) Set(c *fiber.Ctx, token string) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !sess.Fresh() {
		if err := sess.Regenerate(); err != nil {
			return fmt.Errorf("regenerate session: %w", err)
		}
	}
	sess.Set(tokenKey, token)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *Adapter) Get(c *fiber.Ctx) (string, bool, error) {
	sess, err := a.store.Get(c)
	if err != nil {
		return "", false, fmt.Errorf("load session: %w", err)
	}
	if sess.Fresh() {
		return "", false, nil
	}
	token, ok := sess.Get(tokenKey).(string)
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear destroys the session. Clearing an absent session is a no-op.
func (a *Adapter) Clear(c *fiber.Ctx) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess.Fresh() {
		return nil
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
