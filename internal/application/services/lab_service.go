package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// LabService serves lab discovery, test booking and report history
type LabService struct {
	labRepo    repositories.LabRepository
	reportRepo repositories.LabReportRepository
	now        func() time.Time
}

// NewLabService creates a new lab service
func NewLabService(labRepo repositories.LabRepository, reportRepo repositories.LabReportRepository) *LabService {
	return &LabService{
		labRepo:    labRepo,
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

// ListLabs returns all approved labs
func (s *LabService) ListLabs(ctx context.Context) ([]*entities.Lab, error) {
	return s.labRepo.ListApproved(ctx)
}

// ListTests returns the tests a lab offers
func (s *LabService) ListTests(ctx context.Context, labID string) ([]*entities.LabTest, error) {
	if _, err := s.labRepo.GetByID(ctx, labID); err != nil {
		return nil, err
	}
	return s.labRepo.ListTests(ctx, labID)
}

// BookTest books a lab test for a patient, denormalizing lab and test details
// into the report the way the history view renders them.
func (s *LabService) BookTest(ctx context.Context, patientID, testID string) (*entities.LabReport, error) {
	if patientID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}

	test, err := s.labRepo.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	lab, err := s.labRepo.GetByID(ctx, test.LabID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &entities.LabReport{
		ID:            uuid.New().String(),
		LabID:         lab.ID,
		TestID:        test.ID,
		TestName:      test.Name,
		LabName:       lab.Name,
		Category:      test.Category,
		Price:         test.Price,
		PatientID:     patientID,
		Status:        entities.LabReportStatusBooked,
		PaymentStatus: "unpaid",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// Reports returns a patient's lab reports
func (s *LabService) Reports(ctx context.Context, patientID string) ([]*entities.LabReport, error) {
	return s.reportRepo.ListByPatient(ctx, patientID)
}
