package inventory

import (
	"errors"
	"time"

	"maintenance-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for devices.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the device routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/devices", h.HandleListDevices)
	app.Get("/devices/:id", h.HandleGetDevice)
	app.Get("/devices/:id/components", h.HandleGetComponents)
}

// HandleListDevices lists devices with pagination and filters.
// @Summary List devices
// @Tags devices
// @Produce json
// @Param tab query string false "Filter tab (all, preventiva, corretiva)"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Param q query string false "Search term"
// @Success 200 {object} DevicesPage
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/devices [get]
func (h *Handler) HandleListDevices(c *fiber.Ctx) error {
	tab := c.Query("tab", TabAll)
	if tab != TabAll && tab != TabPreventive && tab != TabCorrective {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tab must be one of: all, preventiva, corretiva",
		})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "page must be >= 1 and page_size between 1 and 100",
		})
	}

	result, err := h.service.ListDevices(c.Context(), tab, page, pageSize, c.Query("q"))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Device listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleGetDevice returns the details of a single device.
// @Summary Get device detail
// @Tags devices
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {object} models.Computer
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id} [get]
func (h *Handler) HandleGetDevice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}

	computer, err := h.service.GetDevice(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
		}
		logger.WithRayID(h.logger, c).Error("Device lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(computer)
}

// HandleGetComponents lists the hardware components of a device.
// @Summary List device components
// @Tags devices
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {array} models.Component
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/components [get]
func (h *Handler) HandleGetComponents(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}

	components, err := h.service.GetComponents(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
		}
		logger.WithRayID(h.logger, c).Error("Component listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(components)
}

// HandleHealth reports service liveness.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "maintenance-manager",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
