// Package main is the entry point for the application. It loads
// configuration, connects every process-wide capability through the
// dependency container, registers the routes and runs the HTTP server
// until a shutdown signal arrives.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixcharge/internal/config"
	"pixcharge/internal/container"
	"pixcharge/internal/middleware"
	"pixcharge/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	connectTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cn := container.New(cfg, log)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	err := cn.Connect(connectCtx)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect dependencies: %v", err)
	}
	log.WithField("service", cfg.ServiceName).Info("dependencies connected")

	app := fiber.New(fiber.Config{
		AppName: cfg.ServiceName,
	})
	app.Use(middleware.RequestLogger(log))

	if err := routes.SetupRoutes(ctx, app, cn, log); err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	if err := cn.Close(context.Background()); err != nil {
		log.Errorf("closing dependencies: %v", err)
	}
}
