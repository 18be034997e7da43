package reports

import (
	"fmt"
	"time"

	"maintenance-manager/core/logger"
	"maintenance-manager/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/reports/maintenance", h.HandleMaintenance)
	app.Get("/reports/maintenance/export", h.HandleMaintenanceExport)
}

func parseFilters(c *fiber.Ctx) (Filters, error) {
	var f Filters

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, fmt.Errorf("invalid 'from' date: %s", raw)
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, fmt.Errorf("invalid 'to' date: %s", raw)
		}
		// Inclusive end of day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}

	switch t := c.Query("type"); t {
	case "", models.MaintenancePreventive, models.MaintenanceCorrective:
		f.Type = t
	default:
		return f, fmt.Errorf("invalid maintenance type: %s", t)
	}

	return f, nil
}

// HandleMaintenance returns the maintenance report as JSON.
// @Summary Maintenance report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param type query string false "Maintenance type" Enums(Preventiva, Corretiva)
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/reports/maintenance [get]
func (h *Handler) HandleMaintenance(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Maintenance(c.Context(), filters)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Report generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleMaintenanceExport downloads the maintenance report as a spreadsheet.
// @Summary Export maintenance report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param type query string false "Maintenance type" Enums(Preventiva, Corretiva)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/reports/maintenance/export [get]
func (h *Handler) HandleMaintenanceExport(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, name, err := h.service.ExportXLSX(c.Context(), filters)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Report export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
