package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select(
		"id", "full_name", "email", "phone", "date_of_birth",
		"gender", "blood_group", "allergies", "status",
		"created_at", "updated_at",
	).From("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient := &entities.Patient{}
	var dateOfBirth, gender, bloodGroup, allergies sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.FullName,
		&patient.Email,
		&patient.Phone,
		&dateOfBirth,
		&gender,
		&bloodGroup,
		&allergies,
		&patient.Status,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	patient.DateOfBirth = dateOfBirth.String
	patient.Gender = gender.String
	patient.BloodGroup = bloodGroup.String
	patient.Allergies = allergies.String

	return patient, nil
}

// Upsert creates or replaces a patient profile
func (a *PatientAdapter) Upsert(ctx context.Context, patient *entities.Patient) error {
	record := goqu.Record{
		"id":            patient.ID,
		"full_name":     patient.FullName,
		"email":         patient.Email,
		"phone":         patient.Phone,
		"date_of_birth": patient.DateOfBirth,
		"gender":        patient.Gender,
		"blood_group":   patient.BloodGroup,
		"allergies":     patient.Allergies,
		"status":        patient.Status,
		"created_at":    patient.CreatedAt,
		"updated_at":    patient.UpdatedAt,
	}

	query, args, err := a.db.Insert("patients").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"full_name":     patient.FullName,
			"email":         patient.Email,
			"phone":         patient.Phone,
			"date_of_birth": patient.DateOfBirth,
			"gender":        patient.Gender,
			"blood_group":   patient.BloodGroup,
			"allergies":     patient.Allergies,
			"status":        patient.Status,
			"updated_at":    patient.UpdatedAt,
		})).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert patient", err)
	}

	return nil
}
