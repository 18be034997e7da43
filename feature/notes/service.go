package notes

import (
	"context"
	"errors"

	"maintenance-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Errors returned by the service.
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrNoteNotFound   = errors.New("note not found")
)

// CreateInput is the payload for adding a note.
type CreateInput struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// UpdateInput is the partial payload for editing a note.
type UpdateInput struct {
	Author  *string `json:"author"`
	Content *string `json:"content"`
}

// Service handles note operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new notes service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) deviceExists(ctx context.Context, deviceID uint) error {
	var computer models.Computer
	if err := s.db.WithContext(ctx).First(&computer, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	return nil
}

// ListForDevice returns a device's notes, most recent first.
func (s *Service) ListForDevice(ctx context.Context, deviceID uint) ([]models.ComputerNote, error) {
	if err := s.deviceExists(ctx, deviceID); err != nil {
		return nil, err
	}

	var notes []models.ComputerNote
	err := s.db.WithContext(ctx).
		Where("computer_id = ?", deviceID).
		Order("created_at desc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Create adds a note to a device.
func (s *Service) Create(ctx context.Context, deviceID uint, input CreateInput) (*models.ComputerNote, error) {
	if err := s.deviceExists(ctx, deviceID); err != nil {
		return nil, err
	}

	note := models.ComputerNote{
		ComputerID: deviceID,
		Author:     input.Author,
		Content:    input.Content,
	}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Update edits a note. The note must belong to the given device.
func (s *Service) Update(ctx context.Context, deviceID, noteID uint, input UpdateInput) (*models.ComputerNote, error) {
	var note models.ComputerNote
	err := s.db.WithContext(ctx).
		Where("id = ? AND computer_id = ?", noteID, deviceID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if input.Author != nil {
		note.Author = *input.Author
	}
	if input.Content != nil {
		note.Content = *input.Content
	}

	if err := s.db.WithContext(ctx).Save(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note. The note must belong to the given device.
func (s *Service) Delete(ctx context.Context, deviceID, noteID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND computer_id = ?", noteID, deviceID).
		Delete(&models.ComputerNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
