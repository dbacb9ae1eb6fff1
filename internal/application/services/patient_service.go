package services

import (
	"context"
	"time"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// PatientService maintains patient health profiles
type PatientService struct {
	patientRepo   repositories.PatientRepository
	bloodBankRepo repositories.BloodBankRepository
	now           func() time.Time
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository, bloodBankRepo repositories.BloodBankRepository) *PatientService {
	return &PatientService{
		patientRepo:   patientRepo,
		bloodBankRepo: bloodBankRepo,
		now:           time.Now,
	}
}

// Get retrieves a patient profile
func (s *PatientService) Get(ctx context.Context, id string) (*entities.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

// Save creates or replaces a patient profile. Profile status is derived
// server-side: the booking gate opens only once the health fields are filled.
func (s *PatientService) Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	if patient.ID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}
	if patient.FullName == "" || patient.Email == "" {
		return nil, apperrors.NewValidationError("full name and email are required")
	}

	patient.Status = profileStatus(patient)

	now := s.now()
	patient.UpdatedAt = now
	if patient.CreatedAt.IsZero() {
		if existing, err := s.patientRepo.GetByID(ctx, patient.ID); err == nil {
			patient.CreatedAt = existing.CreatedAt
		} else {
			patient.CreatedAt = now
		}
	}

	if err := s.patientRepo.Upsert(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// BloodBanks returns the blood bank directory
func (s *PatientService) BloodBanks(ctx context.Context) ([]*entities.BloodBank, error) {
	return s.bloodBankRepo.List(ctx)
}

func profileStatus(patient *entities.Patient) entities.PatientProfileStatus {
	if patient.FullName != "" &&
		patient.Email != "" &&
		patient.Phone != "" &&
		patient.DateOfBirth != "" &&
		patient.Gender != "" &&
		patient.BloodGroup != "" {
		return entities.ProfileStatusComplete
	}
	return entities.ProfileStatusIncomplete
}
