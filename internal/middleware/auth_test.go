package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixcharge/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	uid string
	err error
}

func (f fakeAuthenticator) Authenticate(_ context.Context, _ string) (string, error) {
	return f.uid, f.err
}

func testApp(auth Authenticator) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	mw := NewAuthMiddleware(auth, log)
	app.Get("/protected", mw.Handler, func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"uid": user.UID})
	})
	return app
}

func TestAuthMiddleware_Handler(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		app := testApp(fakeAuthenticator{uid: "u1"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, response.BearerChallenge, resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		app := testApp(fakeAuthenticator{uid: "u1"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected token", func(t *testing.T) {
		app := testApp(fakeAuthenticator{err: errors.New("expired")})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, response.BearerChallenge, resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		app := testApp(fakeAuthenticator{uid: "u1"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"uid":"u1"}`, string(body))
	})
}
