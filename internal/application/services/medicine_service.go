package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// MedicineService maintains a patient's medicine history
type MedicineService struct {
	medicineRepo repositories.MedicineRepository
	now          func() time.Time
}

// NewMedicineService creates a new medicine service
func NewMedicineService(medicineRepo repositories.MedicineRepository) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
		now:          time.Now,
	}
}

// Add records a new medicine entry
func (s *MedicineService) Add(ctx context.Context, record *entities.MedicineRecord) (*entities.MedicineRecord, error) {
	if record.PatientID == "" || record.Name == "" {
		return nil, apperrors.NewValidationError("patient id and medicine name are required")
	}

	now := s.now()
	record.ID = uuid.New().String()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.medicineRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// History returns a patient's medicine records, newest first
func (s *MedicineService) History(ctx context.Context, patientID string) ([]*entities.MedicineRecord, error) {
	return s.medicineRepo.ListByPatient(ctx, patientID)
}

// Update edits an existing medicine record. The record must belong to the
// requesting patient.
func (s *MedicineService) Update(ctx context.Context, patientID string, record *entities.MedicineRecord) (*entities.MedicineRecord, error) {
	existing, err := s.findOwned(ctx, patientID, record.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = record.Name
	existing.Dosage = record.Dosage
	existing.Frequency = record.Frequency
	existing.Notes = record.Notes
	existing.UpdatedAt = s.now()

	if err := s.medicineRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a medicine record owned by the patient
func (s *MedicineService) Delete(ctx context.Context, patientID, recordID string) error {
	if _, err := s.findOwned(ctx, patientID, recordID); err != nil {
		return err
	}
	return s.medicineRepo.Delete(ctx, recordID)
}

func (s *MedicineService) findOwned(ctx context.Context, patientID, recordID string) (*entities.MedicineRecord, error) {
	records, err := s.medicineRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == recordID {
			return record, nil
		}
	}
	return nil, apperrors.NewNotFoundError("medicine record not found")
}
