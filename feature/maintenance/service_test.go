package maintenance

import (
	"context"
	"testing"
	"time"

	"maintenance-manager/core/database"
	"maintenance-manager/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) (*gorm.DB, models.Computer) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	computer := models.Computer{GlpiID: 1, Name: "pc-01"}
	if err := db.Create(&computer).Error; err != nil {
		t.Fatalf("seeding computer: %v", err)
	}
	return db, computer
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreate(t *testing.T) {
	performed := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Preventive Schedules Next Due", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		record, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			Description:     "Cleaning and thermal paste",
			PerformedAt:     performed,
			Technician:      "alice",
			NextDueDays:     intPtr(90),
		})
		assert.NoError(t, err)
		assert.NotNil(t, record.NextDue)
		assert.Equal(t, performed.AddDate(0, 0, 90), *record.NextDue)

		var updated models.Computer
		db.First(&updated, computer.ID)
		assert.Equal(t, performed, updated.LastMaintenance.UTC())
		assert.Equal(t, performed.AddDate(0, 0, 90), updated.NextMaintenance.UTC())
	})

	t.Run("Corrective Has No Next Due", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		record, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenanceCorrective,
			PerformedAt:     performed,
			NextDueDays:     intPtr(90), // ignored for corrective
		})
		assert.NoError(t, err)
		assert.Nil(t, record.NextDue)

		var updated models.Computer
		db.First(&updated, computer.ID)
		assert.Nil(t, updated.NextMaintenance)
	})

	t.Run("Unknown Device", func(t *testing.T) {
		db, _ := setupDB(t)
		svc := NewService(db, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      9999,
			MaintenanceType: models.MaintenanceCorrective,
			PerformedAt:     performed,
		})
		assert.ErrorIs(t, err, ErrDeviceNotFound)
	})
}

func TestListForDevice(t *testing.T) {
	db, computer := setupDB(t)
	svc := NewService(db, zap.NewNop())

	older := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{older, newer} {
		_, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenanceCorrective,
			PerformedAt:     ts,
		})
		assert.NoError(t, err)
	}

	history, err := svc.ListForDevice(context.Background(), computer.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	// Most recent first.
	assert.Equal(t, newer, history[0].PerformedAt.UTC())

	_, err = svc.ListForDevice(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestUpdate(t *testing.T) {
	performed := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Reschedules Preventive", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		record, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			PerformedAt:     performed,
			NextDueDays:     intPtr(30),
		})
		assert.NoError(t, err)

		updated, err := svc.Update(context.Background(), record.ID, UpdateInput{
			NextDueDays: intPtr(60),
		})
		assert.NoError(t, err)
		assert.Equal(t, performed.AddDate(0, 0, 60), updated.NextDue.UTC())

		var comp models.Computer
		db.First(&comp, computer.ID)
		assert.Equal(t, performed.AddDate(0, 0, 60), comp.NextMaintenance.UTC())
	})

	t.Run("Switching To Corrective Clears Next Due", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		record, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			PerformedAt:     performed,
			NextDueDays:     intPtr(30),
		})
		assert.NoError(t, err)

		updated, err := svc.Update(context.Background(), record.ID, UpdateInput{
			MaintenanceType: strPtr(models.MaintenanceCorrective),
		})
		assert.NoError(t, err)
		assert.Nil(t, updated.NextDue)

		var comp models.Computer
		db.First(&comp, computer.ID)
		assert.Nil(t, comp.NextMaintenance)
	})

	t.Run("Unknown Record", func(t *testing.T) {
		db, _ := setupDB(t)
		svc := NewService(db, zap.NewNop())

		_, err := svc.Update(context.Background(), 9999, UpdateInput{})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDelete(t *testing.T) {
	performed := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Recomputes From Remaining", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		older, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			PerformedAt:     performed.AddDate(0, -1, 0),
			NextDueDays:     intPtr(30),
		})
		assert.NoError(t, err)

		newest, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			PerformedAt:     performed,
			NextDueDays:     intPtr(30),
		})
		assert.NoError(t, err)

		assert.NoError(t, svc.Delete(context.Background(), newest.ID))

		var comp models.Computer
		db.First(&comp, computer.ID)
		assert.Equal(t, older.PerformedAt.UTC(), comp.LastMaintenance.UTC())
		assert.Equal(t, older.NextDue.UTC(), comp.NextMaintenance.UTC())
	})

	t.Run("Clears When Last Record Removed", func(t *testing.T) {
		db, computer := setupDB(t)
		svc := NewService(db, zap.NewNop())

		record, err := svc.Create(context.Background(), CreateInput{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			PerformedAt:     performed,
			NextDueDays:     intPtr(30),
		})
		assert.NoError(t, err)

		assert.NoError(t, svc.Delete(context.Background(), record.ID))

		var comp models.Computer
		db.First(&comp, computer.ID)
		assert.Nil(t, comp.LastMaintenance)
		assert.Nil(t, comp.NextMaintenance)
	})

	t.Run("Unknown Record", func(t *testing.T) {
		db, _ := setupDB(t)
		svc := NewService(db, zap.NewNop())

		assert.ErrorIs(t, svc.Delete(context.Background(), 9999), ErrRecordNotFound)
	})
}
