package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp(t *testing.T) *fiber.App {
	t.Helper()
	a := New(Config{Expiration: time.Hour})
	app := fiber.New()
	app.Post("/set/:token", func(c *fiber.Ctx) error {
		return a.Set(c, c.Params("token"))
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		token, ok, err := a.Get(c)
		if err != nil {
			return err
		}
		if !ok {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.SendString(token)
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		return a.Clear(c)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, cookie string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatalf("no %s cookie in response", DefaultCookieName)
	return ""
}

func TestAdapter_SetGetClear(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t)

	resp, _ := do(t, app, http.MethodPost, "/set/tok-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp, body := do(t, app, http.MethodGet, "/get", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tok-1", body)

	resp, _ = do(t, app, http.MethodGet, "/clear", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/get", cookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// second clear is a no-op
	resp, _ = do(t, app, http.MethodGet, "/clear", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdapter_SetReplacesToken(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t)

	resp, _ := do(t, app, http.MethodPost, "/set/first", "")
	cookie := sessionCookie(t, resp)

	resp, _ = do(t, app, http.MethodPost, "/set/second", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := sessionCookie(t, resp)
	assert.NotEqual(t, cookie, rotated)

	_, body := do(t, app, http.MethodGet, "/get", rotated)
	assert.Equal(t, "second", body)

	resp, _ = do(t, app, http.MethodGet, "/get", cookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAdapter_GetWithoutSession(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t)

	resp, _ := do(t, app, http.MethodGet, "/get", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/get", DefaultCookieName+"=unknown-id")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/clear", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
