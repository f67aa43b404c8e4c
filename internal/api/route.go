package api

import (
	v1 "github.com/Behyna/storefront-payments/internal/api/v1"
	"github.com/Behyna/storefront-payments/internal/api/v1/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *Handler, v1Handler *v1.Handler, auth middleware.AuthConfig,
	gatherer prometheus.Gatherer, logger *zap.Logger) {
	app.Get("/ping", handler.Pong)
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group(prefixV1)
	api.Post("/payments/ipn", v1Handler.Notification)

	authenticated := api.Group("", middleware.Authenticate(auth, logger))
	authenticated.Post("/payments", v1Handler.InitiatePayment)
	authenticated.Get("/payments", v1Handler.ListPayments)
	authenticated.Get("/payments/:identifier", v1Handler.GetPayment)
	authenticated.Get("/balance", v1Handler.Balance)
}
