package inventory

import (
	"context"
	"errors"
	"time"

	"maintenance-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDeviceNotFound is returned when no device matches the given local id.
var ErrDeviceNotFound = errors.New("device not found")

// Tab filters for the device listing.
const (
	TabAll        = "all"
	TabPreventive = "preventiva"
	TabCorrective = "corretiva"
)

// DeviceRow is one entry of the paginated device listing.
type DeviceRow struct {
	ID                uint    `json:"id"`
	GlpiID            int     `json:"glpi_id"`
	Name              string  `json:"name"`
	MaintenanceStatus string  `json:"maintenance_status"`
	LastMaintenance   *string `json:"last_maintenance"`
	NextMaintenance   *string `json:"next_maintenance"`
}

// DevicesPage is a page of the device listing.
type DevicesPage struct {
	Items    []DeviceRow `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
}

// Service handles device read operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListDevices returns a page of devices filtered by tab and search term,
// ordered by most recently updated.
func (s *Service) ListDevices(ctx context.Context, tab string, page, pageSize int, q string) (*DevicesPage, error) {
	query := s.db.WithContext(ctx).Model(&models.Computer{})

	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"name LIKE ? OR patrimonio LIKE ? OR serial LIKE ? OR entity LIKE ?",
			like, like, like, like,
		)
	}

	switch tab {
	case TabPreventive:
		query = query.Where("last_maintenance IS NOT NULL")
	case TabCorrective:
		query = query.Where("next_maintenance IS NULL OR next_maintenance < ?", time.Now().UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var computers []models.Computer
	offset := (page - 1) * pageSize
	err := query.Order("updated_at desc").Offset(offset).Limit(pageSize).Find(&computers).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]DeviceRow, 0, len(computers))
	for _, comp := range computers {
		items = append(items, DeviceRow{
			ID:                comp.ID,
			GlpiID:            comp.GlpiID,
			Name:              comp.Name,
			MaintenanceStatus: models.MaintenanceStatus(comp.NextMaintenance, now),
			LastMaintenance:   formatDate(comp.LastMaintenance),
			NextMaintenance:   formatDate(comp.NextMaintenance),
		})
	}

	return &DevicesPage{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// GetDevice returns a single device by local id.
func (s *Service) GetDevice(ctx context.Context, id uint) (*models.Computer, error) {
	var computer models.Computer
	err := s.db.WithContext(ctx).First(&computer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &computer, nil
}

// GetComponents returns the components of a device.
func (s *Service) GetComponents(ctx context.Context, deviceID uint) ([]models.Component, error) {
	if _, err := s.GetDevice(ctx, deviceID); err != nil {
		return nil, err
	}

	var components []models.Component
	err := s.db.WithContext(ctx).Where("computer_id = ?", deviceID).Find(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
