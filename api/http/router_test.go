package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/artem13815/buildings/api/http"
	"github.com/artem13815/buildings/api/http/handlers"
	"github.com/artem13815/buildings/api/http/presenter"
	"github.com/artem13815/buildings/pkg/auth"
	"github.com/artem13815/buildings/pkg/design"
	"github.com/artem13815/buildings/pkg/health"
	"github.com/artem13815/buildings/pkg/repository/memory"
	"github.com/artem13815/buildings/pkg/security/jwt"
	"github.com/artem13815/buildings/pkg/session"
)

type testServer struct {
	app    *fiber.App
	tokens *jwt.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := jwt.NewTokenService("e2e-secret", "buildings-api", time.Hour)
	require.NoError(t, err)
	sessions := session.New(session.Config{Expiration: time.Hour})
	authUC := auth.NewAuthService(memory.NewUserRepository(), auth.NewBcryptHasher(bcrypt.MinCost), tokens, auth.WithLogger(log))
	require.NoError(t, authUC.Seed(context.Background(), auth.DemoAccounts...))
	gate := jwt.NewGate(tokens, jwt.DefaultScheme, jwt.WithGateLogger(log))

	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler(log)})
	apihttp.Register(app,
		handlers.NewAuthHandler(authUC, sessions, log),
		handlers.NewHealthHandler(health.NewService(), log),
		handlers.NewDesignHandler(design.NewService()),
		gate.Middleware(sessions),
	)
	return &testServer{app: app, tokens: tokens}
}

type reply struct {
	status  int
	body    map[string]any
	raw     []byte
	cookies []*http.Cookie
}

func (s *testServer) do(t *testing.T, method, path string, payload any, headers map[string]string) reply {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	r := reply{status: resp.StatusCode, raw: raw, cookies: resp.Cookies()}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &r.body))
	}
	return r
}

func sessionCookie(t *testing.T, r reply) string {
	t.Helper()
	for _, c := range r.cookies {
		if c.Name == session.DefaultCookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

func TestEndToEnd_RegisterLoginProtectedLogout(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"email": "alice@x.com", "password": "pw1", "name": "Alice"}

	r := s.do(t, http.MethodPost, "/register", creds, nil)
	require.Equal(t, http.StatusCreated, r.status)
	assert.Equal(t, "Registration successful", r.body["message"])

	r = s.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@x.com", "password": "pw1"}, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Login successful", r.body["message"])
	token, _ := r.body["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, map[string]any{"email": "alice@x.com", "name": "Alice", "role": "user"}, r.body["user"])
	cookie := sessionCookie(t, r)

	r = s.do(t, http.MethodGet, "/protected", nil, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, map[string]any{"email": "alice@x.com", "role": "user"}, r.body["user"])

	r = s.do(t, http.MethodGet, "/protected", nil, map[string]string{"Cookie": cookie})
	require.Equal(t, http.StatusOK, r.status)

	r = s.do(t, http.MethodGet, "/logout", nil, map[string]string{"Cookie": cookie})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Logout successful", r.body["message"])

	r = s.do(t, http.MethodGet, "/protected", nil, map[string]string{"Cookie": cookie})
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Authentication required", r.body["message"])

	// Logout does not revoke the token itself.
	r = s.do(t, http.MethodGet, "/protected", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, r.status)
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/register", map[string]string{"email": "bob@x.com", "password": "pw"}, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Missing required fields", r.body["message"])

	r = s.do(t, http.MethodPost, "/register", nil, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = s.do(t, http.MethodPost, "/register", map[string]string{"email": "USER@example.com", "password": "x", "name": "Dup"}, nil)
	assert.Equal(t, http.StatusConflict, r.status)
	assert.Equal(t, "User already exists", r.body["message"])
}

func TestLogin_Errors(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/login", map[string]string{"email": "user@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Missing email or password", r.body["message"])

	r = s.do(t, http.MethodPost, "/login", map[string]string{"email": "ghost@x.com", "password": "pw"}, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "User not found", r.body["message"])

	r = s.do(t, http.MethodPost, "/login", map[string]string{"email": "user@example.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Invalid password", r.body["message"])
	assert.Empty(t, r.cookies)
}

func TestGate_RejectionMessages(t *testing.T) {
	s := newTestServer(t)
	expired, err := s.tokens.Issue("user@example.com", "user", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	valid, err := s.tokens.Issue("user@example.com", "user", time.Now())
	require.NoError(t, err)
	tampered := valid[:len(valid)-4] + "AAAA"
	if tampered == valid {
		tampered = valid[:len(valid)-4] + "BBBB"
	}

	cases := []struct {
		header string
		msg    string
	}{
		{"", "Authentication required"},
		{"garbage", "Invalid token format"},
		{"Bearer " + expired, "Token expired"},
		{"Bearer " + tampered, "Invalid token"},
	}
	for _, tc := range cases {
		headers := map[string]string{}
		if tc.header != "" {
			headers["Authorization"] = tc.header
		}
		r := s.do(t, http.MethodGet, "/protected", nil, headers)
		assert.Equal(t, http.StatusUnauthorized, r.status, tc.header)
		assert.Equal(t, tc.msg, r.body["message"], tc.header)
	}
}

func TestDesignRoutes(t *testing.T) {
	s := newTestServer(t)
	r := s.do(t, http.MethodPost, "/login", map[string]string{"email": "admin@example.com", "password": "admin123"}, nil)
	require.Equal(t, http.StatusOK, r.status)
	bearer := map[string]string{"Authorization": "Bearer " + r.body["token"].(string)}

	r = s.do(t, http.MethodGet, "/api/user", nil, bearer)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "admin@example.com", r.body["email"])
	assert.Equal(t, "admin", r.body["role"])

	r = s.do(t, http.MethodGet, "/api/buildings", nil, bearer)
	require.Equal(t, http.StatusOK, r.status)
	var buildings []design.Building
	require.NoError(t, json.Unmarshal(r.raw, &buildings))
	assert.Len(t, buildings, 4)

	r = s.do(t, http.MethodGet, "/api/projects", nil, bearer)
	require.Equal(t, http.StatusOK, r.status)
	var projects []design.Project
	require.NoError(t, json.Unmarshal(r.raw, &projects))
	assert.Len(t, projects, 2)

	r = s.do(t, http.MethodPost, "/api/buildings", map[string]any{"name": "Annex", "floors": 2}, bearer)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "success", r.body["status"])
	data, _ := r.body["data"].(map[string]any)
	assert.Equal(t, "Annex", data["name"])
	assert.Equal(t, "admin@example.com", data["user_id"])

	r = s.do(t, http.MethodGet, "/api/buildings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.status)
}

func TestMisc_HealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, r.status)
	r = s.do(t, http.MethodGet, "/api/v1/ready", nil, nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "ready", r.body["status"])

	r = s.do(t, http.MethodGet, "/does-not-exist", nil, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "Resource not found", r.body["message"])
}
