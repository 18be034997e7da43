package notes

import (
	"errors"

	"maintenance-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for device notes.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the notes routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/devices/:id/notes", h.HandleList)
	app.Post("/devices/:id/notes", h.HandleCreate)
	app.Put("/devices/:id/notes/:noteID", h.HandleUpdate)
	app.Delete("/devices/:id/notes/:noteID", h.HandleDelete)
}

func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, ErrDeviceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
	case errors.Is(err, ErrNoteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "note not found"})
	default:
		logger.WithRayID(h.logger, c).Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func deviceID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// HandleList lists a device's notes.
// @Summary List device notes
// @Tags notes
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {array} models.ComputerNote
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/notes [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	id, ok := deviceID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}

	notes, err := h.service.ListForDevice(c.Context(), id)
	if err != nil {
		return h.fail(c, err, "Note listing failed")
	}
	return c.JSON(notes)
}

// HandleCreate adds a note to a device.
// @Summary Add device note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Device ID"
// @Param payload body CreateInput true "Note data"
// @Success 200 {object} models.ComputerNote
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/notes [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	id, ok := deviceID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	note, err := h.service.Create(c.Context(), id, input)
	if err != nil {
		return h.fail(c, err, "Note creation failed")
	}
	return c.JSON(note)
}

// HandleUpdate edits a note.
// @Summary Update device note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Device ID"
// @Param noteID path int true "Note ID"
// @Param payload body UpdateInput true "Fields to change"
// @Success 200 {object} models.ComputerNote
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/notes/{noteID} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := deviceID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}
	noteID, err := c.ParamsInt("noteID")
	if err != nil || noteID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid note id"})
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	note, err := h.service.Update(c.Context(), id, uint(noteID), input)
	if err != nil {
		return h.fail(c, err, "Note update failed")
	}
	return c.JSON(note)
}

// HandleDelete removes a note.
// @Summary Delete device note
// @Tags notes
// @Produce json
// @Param id path int true "Device ID"
// @Param noteID path int true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/devices/{id}/notes/{noteID} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, ok := deviceID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid device id"})
	}
	noteID, err := c.ParamsInt("noteID")
	if err != nil || noteID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid note id"})
	}

	if err := h.service.Delete(c.Context(), id, uint(noteID)); err != nil {
		return h.fail(c, err, "Note deletion failed")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
