package health

import (
	"filevault/core/logger"
	"filevault/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
}

// HandleHealth reports dependency health.
// @Summary Health Check
// @Description Checks the storage bucket and, when configured, the database pool.
// @Tags health
// @Produce json
// @Success 200 {object} response.Envelope{data=Report}
// @Failure 503 {object} response.Envelope{data=Report}
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.Context())
	if !report.Healthy() {
		logger.WithRayID(h.service.logger, c).Warn("Health check failed",
			zap.String("storage", string(report.Storage.Status)),
			zap.String("storage_error", report.Storage.Error))
		return response.ServiceUnavailable(c, report)
	}
	return response.OK(c, report)
}
