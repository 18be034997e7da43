package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"maintenance-manager/core/database"
	"maintenance-manager/core/storage/mocks"
	"maintenance-manager/feature/inventory/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func seedHistory(t *testing.T, db *gorm.DB) {
	computer := models.Computer{GlpiID: 1, Name: "pc-01", Patrimonio: "PAT-001", Serial: "SN-001"}
	if err := db.Create(&computer).Error; err != nil {
		t.Fatalf("seeding computer: %v", err)
	}

	nextDue := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	records := []models.MaintenanceHistory{
		{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenancePreventive,
			Description:     "Quarterly cleaning",
			PerformedAt:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Technician:      "alice",
			NextDue:         &nextDue,
		},
		{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenanceCorrective,
			Description:     "Replaced disk",
			PerformedAt:     time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			Technician:      "bob",
		},
		{
			ComputerID:      computer.ID,
			MaintenanceType: models.MaintenanceCorrective,
			Description:     "Reseated RAM",
			PerformedAt:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Technician:      "bob",
		},
	}
	if err := db.Create(&records).Error; err != nil {
		t.Fatalf("seeding history: %v", err)
	}
}

func timePtr(v time.Time) *time.Time { return &v }

func TestMaintenance(t *testing.T) {
	db := setupDB(t)
	seedHistory(t, db)
	svc := NewService(db, nil, "reports", zap.NewNop())

	t.Run("Unfiltered", func(t *testing.T) {
		report, err := svc.Maintenance(context.Background(), Filters{})
		assert.NoError(t, err)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 1, report.PreventiveCount)
		assert.Equal(t, 2, report.CorrectiveCount)
		// Most recent first, joined with device data.
		assert.Equal(t, "Replaced disk", report.Rows[0].Description)
		assert.Equal(t, "pc-01", report.Rows[0].ComputerName)
		assert.Equal(t, "PAT-001", report.Rows[0].Patrimonio)
	})

	t.Run("By Type", func(t *testing.T) {
		report, err := svc.Maintenance(context.Background(), Filters{Type: models.MaintenancePreventive})
		assert.NoError(t, err)
		assert.Equal(t, 1, report.Total)
		assert.Equal(t, "Quarterly cleaning", report.Rows[0].Description)
		assert.NotNil(t, report.Rows[0].NextDue)
	})

	t.Run("By Date Range", func(t *testing.T) {
		report, err := svc.Maintenance(context.Background(), Filters{
			From: timePtr(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
			To:   timePtr(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)),
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, report.Total)
		assert.Equal(t, "Quarterly cleaning", report.Rows[0].Description)
	})

	t.Run("Empty Result", func(t *testing.T) {
		report, err := svc.Maintenance(context.Background(), Filters{
			From: timePtr(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		})
		assert.NoError(t, err)
		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.Rows)
	})
}

func TestExportXLSX(t *testing.T) {
	t.Run("Without Archive", func(t *testing.T) {
		db := setupDB(t)
		seedHistory(t, db)
		svc := NewService(db, nil, "reports", zap.NewNop())

		data, name, err := svc.ExportXLSX(context.Background(), Filters{})
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Contains(t, name, "maintenance-report-")
		// XLSX files are zip archives.
		assert.Equal(t, []byte("PK"), data[:2])
	})

	t.Run("Archives Copy", func(t *testing.T) {
		db := setupDB(t)
		seedHistory(t, db)

		archive := new(mocks.Client)
		archive.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		archive.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil)
		archive.On("PutObject", mock.Anything, "reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc := NewService(db, archive, "reports", zap.NewNop())
		_, _, err := svc.ExportXLSX(context.Background(), Filters{})
		assert.NoError(t, err)
		archive.AssertExpectations(t)
	})

	t.Run("Archive Failure Does Not Block Download", func(t *testing.T) {
		db := setupDB(t)
		seedHistory(t, db)

		archive := new(mocks.Client)
		archive.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("storage down"))

		svc := NewService(db, archive, "reports", zap.NewNop())
		data, _, err := svc.ExportXLSX(context.Background(), Filters{})
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}
