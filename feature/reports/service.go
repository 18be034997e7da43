package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"maintenance-manager/core/storage"
	"maintenance-manager/feature/inventory/models"

	"github.com/minio/minio-go/v7"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filters narrows a maintenance report.
type Filters struct {
	From *time.Time
	To   *time.Time
	Type string
}

// Row is one maintenance record joined with its device.
type Row struct {
	ComputerID      uint       `json:"computer_id"`
	ComputerName    string     `json:"computer_name"`
	Patrimonio      string     `json:"patrimonio"`
	Serial          string     `json:"serial"`
	MaintenanceType string     `json:"maintenance_type"`
	Description     string     `json:"description"`
	PerformedAt     time.Time  `json:"performed_at"`
	Technician      string     `json:"technician"`
	NextDue         *time.Time `json:"next_due"`
}

// Report is the aggregated maintenance report.
type Report struct {
	GeneratedAt     time.Time `json:"generated_at"`
	Total           int       `json:"total"`
	PreventiveCount int       `json:"preventive_count"`
	CorrectiveCount int       `json:"corrective_count"`
	Rows            []Row     `json:"rows"`
}

// Service builds maintenance reports and exports.
type Service struct {
	db      *gorm.DB
	archive storage.Client
	bucket  string
	logger  *zap.Logger
}

// NewService creates a new reports service. The archive client may be nil
// when object storage is not configured.
func NewService(db *gorm.DB, archive storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, archive: archive, bucket: bucket, logger: logger}
}

// Maintenance builds a maintenance report for the given filters.
func (s *Service) Maintenance(ctx context.Context, f Filters) (*Report, error) {
	query := s.db.WithContext(ctx).
		Table("maintenance_histories").
		Select(`maintenance_histories.computer_id,
			computers.name AS computer_name,
			computers.patrimonio,
			computers.serial,
			maintenance_histories.maintenance_type,
			maintenance_histories.description,
			maintenance_histories.performed_at,
			maintenance_histories.technician,
			maintenance_histories.next_due`).
		Joins("JOIN computers ON computers.id = maintenance_histories.computer_id").
		Order("maintenance_histories.performed_at desc")

	if f.From != nil {
		query = query.Where("maintenance_histories.performed_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("maintenance_histories.performed_at <= ?", *f.To)
	}
	if f.Type != "" {
		query = query.Where("maintenance_histories.maintenance_type = ?", f.Type)
	}

	var rows []Row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt: time.Now(),
		Total:       len(rows),
		Rows:        rows,
	}
	for _, row := range rows {
		switch row.MaintenanceType {
		case models.MaintenancePreventive:
			report.PreventiveCount++
		case models.MaintenanceCorrective:
			report.CorrectiveCount++
		}
	}
	return report, nil
}

// ExportXLSX builds the report and renders it as a spreadsheet. When an
// archive client is configured a copy is uploaded, best effort.
func (s *Service) ExportXLSX(ctx context.Context, f Filters) ([]byte, string, error) {
	report, err := s.Maintenance(ctx, f)
	if err != nil {
		return nil, "", err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Manutenções")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range []string{
		"Equipamento", "Patrimônio", "Série", "Tipo",
		"Descrição", "Data", "Técnico", "Próxima Manutenção",
	} {
		header.AddCell().SetString(title)
	}

	for _, row := range report.Rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.ComputerName)
		r.AddCell().SetString(row.Patrimonio)
		r.AddCell().SetString(row.Serial)
		r.AddCell().SetString(row.MaintenanceType)
		r.AddCell().SetString(row.Description)
		r.AddCell().SetString(row.PerformedAt.Format("2006-01-02"))
		r.AddCell().SetString(row.Technician)
		if row.NextDue != nil {
			r.AddCell().SetString(row.NextDue.Format("2006-01-02"))
		} else {
			r.AddCell().SetString("")
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	name := fmt.Sprintf("maintenance-report-%s.xlsx", report.GeneratedAt.Format("20060102-150405"))
	s.archiveExport(ctx, name, buf.Bytes())

	return buf.Bytes(), name, nil
}

// archiveExport uploads a rendered export. Failures are logged only; the
// caller still gets the spreadsheet.
func (s *Service) archiveExport(ctx context.Context, name string, data []byte) {
	if s.archive == nil {
		return
	}

	exists, err := s.archive.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Warn("Report archive unavailable", zap.Error(err))
		return
	}
	if !exists {
		if err := s.archive.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.logger.Warn("Failed to create report bucket", zap.String("bucket", s.bucket), zap.Error(err))
			return
		}
	}

	_, err = s.archive.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xlsxContentType})
	if err != nil {
		s.logger.Warn("Failed to archive report", zap.String("object", name), zap.Error(err))
		return
	}
	s.logger.Info("Report archived", zap.String("bucket", s.bucket), zap.String("object", name))
}
