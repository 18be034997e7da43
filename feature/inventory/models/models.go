package models

import "time"

// Maintenance types. Anything else is treated as corrective for scheduling
// purposes (no next-due date).
const (
	MaintenancePreventive = "Preventiva"
	MaintenanceCorrective = "Corretiva"
)

// Maintenance status labels derived from the next-due date.
const (
	StatusPending = "Pendente"
	StatusOverdue = "Atrasada"
	StatusOnTrack = "Em Dia"
)

// Computer is the local mirror of a GLPI computer asset.
// Exactly one row exists per GLPI id; rows are created on first sync
// observation and updated on every subsequent pass, never deleted by sync.
type Computer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GlpiID int  `gorm:"uniqueIndex;not null" json:"glpi_id"`

	Name       string `gorm:"size:255" json:"name"`
	Entity     string `gorm:"size:255" json:"entity"`
	Patrimonio string `gorm:"size:255" json:"patrimonio"`
	Serial     string `gorm:"size:255" json:"serial"`
	Location   string `gorm:"size:255" json:"location"`
	Status     string `gorm:"size:255" json:"status"`

	// GlpiData is the raw record as returned by the GLPI API.
	GlpiData JSON `gorm:"type:json" json:"glpi_data,omitempty"`

	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Component is a hardware part attached to a Computer. The set of components
// for a computer reflects only the most recent sync pass: they are deleted
// and recreated wholesale each time their computer is synced.
type Component struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ComputerID uint `gorm:"index;not null" json:"computer_id"`

	ComponentType string `gorm:"size:100" json:"component_type"`
	Name          string `gorm:"size:255" json:"name"`
	Manufacturer  string `gorm:"size:255" json:"manufacturer"`
	Model         string `gorm:"size:255" json:"model"`
	Serial        string `gorm:"size:255" json:"serial"`
	Capacity      string `gorm:"size:100" json:"capacity"`

	// ComponentData is the raw item record as returned by the GLPI API.
	ComponentData JSON `gorm:"type:json" json:"component_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MaintenanceHistory records one maintenance intervention on a computer.
type MaintenanceHistory struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ComputerID uint `gorm:"index;not null" json:"computer_id"`

	MaintenanceType string     `gorm:"size:50" json:"maintenance_type"`
	Description     string     `gorm:"type:text" json:"description"`
	PerformedAt     time.Time  `json:"performed_at"`
	Technician      string     `gorm:"size:255" json:"technician"`
	NextDue         *time.Time `json:"next_due"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputerNote is a free-form note attached to a computer, local only.
type ComputerNote struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ComputerID uint `gorm:"index;not null" json:"computer_id"`

	Author  string `gorm:"size:255" json:"author"`
	Content string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&Computer{},
		&Component{},
		&MaintenanceHistory{},
		&ComputerNote{},
	}
}

// MaintenanceStatus derives the display status of a computer from its
// next-due date: no date means maintenance was never scheduled, a past date
// means it is overdue.
func MaintenanceStatus(next *time.Time, now time.Time) string {
	if next == nil {
		return StatusPending
	}
	if now.After(*next) {
		return StatusOverdue
	}
	return StatusOnTrack
}
