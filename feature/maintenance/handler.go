package maintenance

import (
	"errors"

	"maintenance-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for maintenance records.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the maintenance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/maintenance", h.HandleCreate)
	app.Put("/maintenance/:id", h.HandleUpdate)
	app.Delete("/maintenance/:id", h.HandleDelete)
	app.Get("/devices/:id/maintenance", h.HandleListForDevice)
}

func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, ErrDeviceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
	case errors.Is(err, ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "maintenance record not found"})
	default:
		logger.WithRayID(h.logger, c).Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandleCreate registers a new maintenance.
// @Summary Register maintenance
// @Tags maintenance
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Maintenance data"
// @Success 200 {object} models.MaintenanceHistory
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/maintenance [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if input.ComputerID == 0 || input.MaintenanceType == "" || input.PerformedAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "computer_id, maintenance_type and performed_at are required",
		})
	}

	record, err := h.service.Create(c.Context(), input)
	if err != nil {
		return h.fail(c, err, "Maintenance creation failed")
	}
	return c.JSON(record)
}

// HandleListForDevice lists a device's maintenance history.
// @Summary List device maintenance history
// @Tags maintenance
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {array} models.MaintenanceHistory
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/maintenance [get]
func (h *Handler) HandleListForDevice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}

	history, err := h.service.ListForDevice(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err, "Maintenance listing failed")
	}
	return c.JSON(history)
}

// HandleUpdate edits a maintenance record.
// @Summary Update maintenance
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path int true "Maintenance ID"
// @Param payload body UpdateInput true "Fields to change"
// @Success 200 {object} models.MaintenanceHistory
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/maintenance/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid maintenance id"})
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	record, err := h.service.Update(c.Context(), uint(id), input)
	if err != nil {
		return h.fail(c, err, "Maintenance update failed")
	}
	return c.JSON(record)
}

// HandleDelete removes a maintenance record.
// @Summary Delete maintenance
// @Tags maintenance
// @Produce json
// @Param id path int true "Maintenance ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/maintenance/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid maintenance id"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return h.fail(c, err, "Maintenance deletion failed")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
