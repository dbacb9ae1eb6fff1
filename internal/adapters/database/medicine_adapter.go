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

// MedicineAdapter implements the MedicineRepository interface
type MedicineAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicineAdapter creates a new medicine adapter
func NewMedicineAdapter(client *postgres.Client) repositories.MedicineRepository {
	return &MedicineAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new medicine record
func (a *MedicineAdapter) Create(ctx context.Context, record *entities.MedicineRecord) error {
	row := goqu.Record{
		"id":         record.ID,
		"patient_id": record.PatientID,
		"name":       record.Name,
		"dosage":     record.Dosage,
		"frequency":  record.Frequency,
		"notes":      record.Notes,
		"created_at": record.CreatedAt,
		"updated_at": record.UpdatedAt,
	}

	query, args, err := a.db.Insert("medicine_records").Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create medicine record", err)
	}

	return nil
}

// ListByPatient retrieves a patient's medicine records, newest first
func (a *MedicineAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicineRecord, error) {
	query, args, err := a.db.Select(
		"id", "patient_id", "name", "dosage", "frequency", "notes",
		"created_at", "updated_at",
	).From("medicine_records").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medicine records", err)
	}
	defer rows.Close()

	var records []*entities.MedicineRecord
	for rows.Next() {
		record := &entities.MedicineRecord{}
		err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.Name,
			&record.Dosage,
			&record.Frequency,
			&record.Notes,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan medicine record", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Update updates a medicine record
func (a *MedicineAdapter) Update(ctx context.Context, record *entities.MedicineRecord) error {
	record.UpdatedAt = time.Now()

	query, args, err := a.db.Update("medicine_records").
		Set(goqu.Record{
			"name":       record.Name,
			"dosage":     record.Dosage,
			"frequency":  record.Frequency,
			"notes":      record.Notes,
			"updated_at": record.UpdatedAt,
		}).
		Where(goqu.Ex{"id": record.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update medicine record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine record with id %s not found", record.ID))
	}

	return nil
}

// Delete removes a medicine record
func (a *MedicineAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("medicine_records").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete medicine record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine record with id %s not found", id))
	}

	return nil
}
