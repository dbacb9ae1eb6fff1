package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// LabReportAdapter implements the LabReportRepository interface
type LabReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLabReportAdapter creates a new lab report adapter
func NewLabReportAdapter(client *postgres.Client) repositories.LabReportRepository {
	return &LabReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new lab report
func (a *LabReportAdapter) Create(ctx context.Context, report *entities.LabReport) error {
	record := goqu.Record{
		"id":             report.ID,
		"lab_id":         report.LabID,
		"test_id":        report.TestID,
		"test_name":      report.TestName,
		"lab_name":       report.LabName,
		"category":       report.Category,
		"price":          report.Price,
		"patient_id":     report.PatientID,
		"status":         report.Status,
		"payment_status": report.PaymentStatus,
		"created_at":     report.CreatedAt,
		"updated_at":     report.UpdatedAt,
	}

	query, args, err := a.db.Insert("lab_reports").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create lab report", err)
	}

	return nil
}

// ListByPatient retrieves a patient's lab reports
func (a *LabReportAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.LabReport, error) {
	query, args, err := a.db.Select(
		"id", "lab_id", "test_id", "test_name", "lab_name", "category",
		"price", "patient_id", "status", "payment_status",
		"created_at", "updated_at",
	).From("lab_reports").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list lab reports", err)
	}
	defer rows.Close()

	var reports []*entities.LabReport
	for rows.Next() {
		report := &entities.LabReport{}
		err := rows.Scan(
			&report.ID,
			&report.LabID,
			&report.TestID,
			&report.TestName,
			&report.LabName,
			&report.Category,
			&report.Price,
			&report.PatientID,
			&report.Status,
			&report.PaymentStatus,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lab report", err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// UpdateStatus sets a report's status
func (a *LabReportAdapter) UpdateStatus(ctx context.Context, id string, status entities.LabReportStatus) error {
	query, args, err := a.db.Update("lab_reports").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update lab report", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("lab report with id %s not found", id))
	}

	return nil
}
