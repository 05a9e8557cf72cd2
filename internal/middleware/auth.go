// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"context"
	"strings"

	"pixcharge/internal/models"
	"pixcharge/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Key under which the authenticated user is stored in the request
// context.
const UserLocal = "user"

// Authenticator verifies a bearer token and returns the stable user id.
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (string, error)
}

// AuthMiddleware turns the Authorization header into an authenticated
// user in the request context, or answers 401 with a bearer challenge.
type AuthMiddleware struct {
	auth Authenticator
	log  *logrus.Logger
}

func NewAuthMiddleware(auth Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, log: log}
}

// Handler validates the bearer token and stores the user in c.Locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c)
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return response.Unauthorized(c)
	}

	uid, err := m.auth.Authenticate(c.Context(), token)
	if err != nil {
		m.log.WithError(err).Info("authentication rejected")
		return response.Unauthorized(c)
	}

	c.Locals(UserLocal, models.AuthenticatedUser{UID: uid})
	return c.Next()
}

// UserFromContext returns the authenticated user stored by Handler.
func UserFromContext(c *fiber.Ctx) (models.AuthenticatedUser, bool) {
	user, ok := c.Locals(UserLocal).(models.AuthenticatedUser)
	return user, ok
}
