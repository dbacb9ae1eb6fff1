package repositories

import (
	"context"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor profiles
type DoctorRepository interface {
	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// ListApproved retrieves all approved doctors
	ListApproved(ctx context.Context) ([]*entities.Doctor, error)
}

// DoctorSearchRepository defines the full-text doctor discovery index
type DoctorSearchRepository interface {
	// InitSchema ensures the search collection exists
	InitSchema(ctx context.Context) error

	// Index upserts a doctor into the search index
	Index(ctx context.Context, doctor *entities.Doctor) error

	// Search finds approved doctors by name or specialty
	Search(ctx context.Context, query string, limit int) ([]*entities.Doctor, error)
}

// PatientRepository defines the interface for patient profiles
type PatientRepository interface {
	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// Upsert creates or replaces a patient profile
	Upsert(ctx context.Context, patient *entities.Patient) error
}
