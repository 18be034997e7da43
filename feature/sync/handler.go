package sync

import (
	"errors"

	"maintenance-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync engine.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync/glpi", h.HandleSync)
	app.Get("/sync/status", h.HandleStatus)
	app.Post("/webhook/glpi", h.HandleWebhook)
}

// HandleSync triggers a GLPI sync.
// @Summary Sync computers from GLPI
// @Description Synchronizes GLPI computers into the local database. Use ?async=true to run in the background and poll /api/sync/status.
// @Tags sync
// @Produce json
// @Param async query bool false "Run in background"
// @Success 200 {object} Result
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/glpi [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if c.QueryBool("async") {
		if !h.service.TryRunBackground() {
			return c.JSON(Result{
				Message: "Sync already in progress. Check /api/sync/status.",
			})
		}
		return c.JSON(Result{
			Message: "Sync started in background. Check /api/sync/status.",
		})
	}

	result, err := h.service.RunExclusive(c.Context())
	if err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "sync already in progress, check /api/sync/status",
			})
		}
		l.Error("Sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "sync failed: " + err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleStatus returns the current sync run state.
// @Summary Sync status
// @Description Status of the running or last sync pass.
// @Tags sync
// @Produce json
// @Success 200 {object} Status
// @Router /api/sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.State().Snapshot())
}

// HandleWebhook relays an inbound GLPI webhook into a synchronous sync.
// @Summary GLPI webhook
// @Description Triggered by GLPI when assets change; runs a full sync.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/webhook/glpi [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	result, err := h.service.RunExclusive(c.Context())
	if err != nil {
		l.Error("Webhook sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"result": result,
	})
}
