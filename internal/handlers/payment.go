// Package handlers contains the fiber handlers for the HTTP surface.
package handlers

import (
	"errors"

	"pixcharge/internal/middleware"
	"pixcharge/internal/models"
	"pixcharge/internal/services/charge"
	"pixcharge/internal/services/identity"
	"pixcharge/internal/utils/response"
	"pixcharge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PaymentHandler serves the charge endpoint.
type PaymentHandler struct {
	charges charge.Service
	log     *logrus.Logger
}

func NewPaymentHandler(charges charge.Service, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{charges: charges, log: log}
}

// ChargePix creates a PIX charge for the authenticated user and returns
// the QR image URI and the copy-paste string.
func (h *PaymentHandler) ChargePix(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input models.ChargeRequest
	if err := c.BodyParser(&input); err != nil {
		return response.ValidationFailed(c, map[string]string{
			"charge_value": "must be a number",
		})
	}

	v := validation.New()
	v.ChargeRequest(&input)
	if !v.Valid() {
		return response.ValidationFailed(c, v.Errors)
	}

	out, err := h.charges.Execute(c.Context(), input, user)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			return response.Unauthorized(c)
		}
		// Everything else is opaque to the caller; provider details stay
		// in the logs.
		h.log.WithError(err).WithField("uid", user.UID).Error("charge failed")
		return response.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}
