package notes

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

func strPtr(v string) *string { return &v }

func TestCreateAndList(t *testing.T) {
	db, computer := setupDB(t)
	svc := NewService(db, zap.NewNop())

	first, err := svc.Create(context.Background(), computer.ID, CreateInput{
		Author:  "alice",
		Content: "Replaced the PSU fan",
	})
	assert.NoError(t, err)
	assert.NotZero(t, first.ID)

	// Created-at ordering needs distinct timestamps.
	db.Model(first).Update("created_at", time.Now().Add(-time.Hour))

	second, err := svc.Create(context.Background(), computer.ID, CreateInput{
		Author:  "bob",
		Content: "Scheduled for disk swap",
	})
	assert.NoError(t, err)

	notes, err := svc.ListForDevice(context.Background(), computer.ID)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	// Most recent first.
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestCreateUnknownDevice(t *testing.T) {
	db, _ := setupDB(t)
	svc := NewService(db, zap.NewNop())

	_, err := svc.Create(context.Background(), 9999, CreateInput{Content: "orphan"})
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	_, err = svc.ListForDevice(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestUpdate(t *testing.T) {
	db, computer := setupDB(t)
	svc := NewService(db, zap.NewNop())

	note, err := svc.Create(context.Background(), computer.ID, CreateInput{
		Author:  "alice",
		Content: "initial",
	})
	assert.NoError(t, err)

	updated, err := svc.Update(context.Background(), computer.ID, note.ID, UpdateInput{
		Content: strPtr("amended"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "amended", updated.Content)
	// Untouched field keeps its value.
	assert.Equal(t, "alice", updated.Author)

	_, err = svc.Update(context.Background(), computer.ID, 9999, UpdateInput{})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	// A note is only addressable through its own device.
	_, err = svc.Update(context.Background(), 9999, note.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDelete(t *testing.T) {
	db, computer := setupDB(t)
	svc := NewService(db, zap.NewNop())

	note, err := svc.Create(context.Background(), computer.ID, CreateInput{Content: "to remove"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), computer.ID, note.ID))

	notes, err := svc.ListForDevice(context.Background(), computer.ID)
	assert.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, svc.Delete(context.Background(), computer.ID, note.ID), ErrNoteNotFound)
}
