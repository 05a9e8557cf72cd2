// Package routes defines the API routing configuration.
package routes

import (
	"context"

	"pixcharge/internal/container"
	"pixcharge/internal/handlers"
	"pixcharge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SetupRoutes wires the handlers to the fiber app. The container must be
// connected before this is called.
func SetupRoutes(ctx context.Context, app *fiber.App, cn *container.Container, log *logrus.Logger) error {
	chargeSvc, err := cn.ChargeService(ctx)
	if err != nil {
		return err
	}
	identitySvc, err := cn.Identity(ctx)
	if err != nil {
		return err
	}

	authMiddleware := middleware.NewAuthMiddleware(identitySvc, log)
	paymentHandler := handlers.NewPaymentHandler(chargeSvc, log)

	app.Get("/health", handlers.Health)
	app.Post("/charge-pix", authMiddleware.Handler, paymentHandler.ChargePix)

	return nil
}
