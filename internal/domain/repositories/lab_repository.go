package repositories

import (
	"context"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// LabRepository defines the interface for labs and their tests
type LabRepository interface {
	// ListApproved retrieves all approved labs
	ListApproved(ctx context.Context) ([]*entities.Lab, error)

	// GetByID retrieves a lab by ID
	GetByID(ctx context.Context, id string) (*entities.Lab, error)

	// ListTests retrieves the tests offered by a lab
	ListTests(ctx context.Context, labID string) ([]*entities.LabTest, error)

	// GetTest retrieves a single lab test
	GetTest(ctx context.Context, testID string) (*entities.LabTest, error)
}

// LabReportRepository defines the interface for patient lab orders
type LabReportRepository interface {
	// Create creates a new lab report
	Create(ctx context.Context, report *entities.LabReport) error

	// ListByPatient retrieves a patient's lab reports
	ListByPatient(ctx context.Context, patientID string) ([]*entities.LabReport, error)

	// UpdateStatus sets a report's status
	UpdateStatus(ctx context.Context, id string, status entities.LabReportStatus) error
}

// BloodBankRepository defines the interface for blood bank lookups
type BloodBankRepository interface {
	// List retrieves all blood banks
	List(ctx context.Context) ([]*entities.BloodBank, error)
}

// MedicineRepository defines the interface for medicine history
type MedicineRepository interface {
	// Create creates a new medicine record
	Create(ctx context.Context, record *entities.MedicineRecord) error

	// ListByPatient retrieves a patient's medicine records, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicineRecord, error)

	// Update updates a medicine record
	Update(ctx context.Context, record *entities.MedicineRecord) error

	// Delete removes a medicine record
	Delete(ctx context.Context, id string) error
}
