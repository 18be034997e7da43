package maintenance

import (
	"context"
	"errors"
	"time"

	"maintenance-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Errors returned by the service.
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrRecordNotFound = errors.New("maintenance record not found")
)

// CreateInput is the payload for registering a maintenance.
type CreateInput struct {
	ComputerID      uint      `json:"computer_id"`
	MaintenanceType string    `json:"maintenance_type"`
	Description     string    `json:"description"`
	PerformedAt     time.Time `json:"performed_at"`
	Technician      string    `json:"technician"`
	NextDueDays     *int      `json:"next_due_days"`
}

// UpdateInput is the partial payload for editing a maintenance record.
// Nil fields are left unchanged.
type UpdateInput struct {
	MaintenanceType *string    `json:"maintenance_type"`
	Description     *string    `json:"description"`
	PerformedAt     *time.Time `json:"performed_at"`
	Technician      *string    `json:"technician"`
	NextDueDays     *int       `json:"next_due_days"`
}

// Service handles maintenance record operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new maintenance service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Create registers a maintenance on a device and updates the device's
// last/next maintenance stamps. Preventive maintenances with a next-due
// interval schedule the follow-up date.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.MaintenanceHistory, error) {
	var record models.MaintenanceHistory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var computer models.Computer
		if err := tx.First(&computer, input.ComputerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeviceNotFound
			}
			return err
		}

		var nextDue *time.Time
		if input.MaintenanceType == models.MaintenancePreventive && input.NextDueDays != nil && *input.NextDueDays > 0 {
			due := input.PerformedAt.AddDate(0, 0, *input.NextDueDays)
			nextDue = &due
		}

		record = models.MaintenanceHistory{
			ComputerID:      input.ComputerID,
			MaintenanceType: input.MaintenanceType,
			Description:     input.Description,
			PerformedAt:     input.PerformedAt,
			Technician:      input.Technician,
			NextDue:         nextDue,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		computer.LastMaintenance = &record.PerformedAt
		if nextDue != nil {
			computer.NextMaintenance = nextDue
		}
		return tx.Save(&computer).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// ListForDevice returns a device's maintenance history, most recent first.
func (s *Service) ListForDevice(ctx context.Context, deviceID uint) ([]models.MaintenanceHistory, error) {
	var computer models.Computer
	if err := s.db.WithContext(ctx).First(&computer, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	var history []models.MaintenanceHistory
	err := s.db.WithContext(ctx).
		Where("computer_id = ?", deviceID).
		Order("performed_at desc").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// Update edits a maintenance record and refreshes the owning device's
// last/next maintenance stamps. The next-due date is recalculated: only
// preventive maintenances keep one.
func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*models.MaintenanceHistory, error) {
	var record models.MaintenanceHistory

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if input.MaintenanceType != nil {
			record.MaintenanceType = *input.MaintenanceType
		}
		if input.Description != nil {
			record.Description = *input.Description
		}
		if input.PerformedAt != nil {
			record.PerformedAt = *input.PerformedAt
		}
		if input.Technician != nil {
			record.Technician = *input.Technician
		}

		nextDue := record.NextDue
		if record.MaintenanceType == models.MaintenancePreventive && input.NextDueDays != nil {
			due := record.PerformedAt.AddDate(0, 0, *input.NextDueDays)
			nextDue = &due
		}
		if record.MaintenanceType != models.MaintenancePreventive {
			nextDue = nil
		}
		record.NextDue = nextDue

		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		var computer models.Computer
		if err := tx.First(&computer, record.ComputerID).Error; err == nil {
			computer.LastMaintenance = &record.PerformedAt
			computer.NextMaintenance = nextDue
			if err := tx.Save(&computer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes a maintenance record and recomputes the owning device's
// stamps from the most recent remaining record, clearing them when none is
// left.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.MaintenanceHistory
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		computerID := record.ComputerID
		if err := tx.Delete(&record).Error; err != nil {
			return err
		}

		var computer models.Computer
		if err := tx.First(&computer, computerID).Error; err != nil {
			// Record deleted; a missing device is not an error here.
			return nil
		}

		var latest models.MaintenanceHistory
		err := tx.Where("computer_id = ?", computerID).
			Order("performed_at desc").
			First(&latest).Error
		switch {
		case err == nil:
			computer.LastMaintenance = &latest.PerformedAt
			computer.NextMaintenance = latest.NextDue
		case errors.Is(err, gorm.ErrRecordNotFound):
			computer.LastMaintenance = nil
			computer.NextMaintenance = nil
		default:
			return err
		}

		return tx.Save(&computer).Error
	})
}
