package repositories

import (
	"context"
	"time"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// UpdateStatus sets the appointment status unconditionally
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error

	// ConfirmIfUnclaimed sets status to confirmed only when no other
	// appointment for the same (slot_id, date) already holds confirmed.
	// Returns a conflict error when a sibling got there first.
	ConfirmIfUnclaimed(ctx context.Context, id string) error

	// ListByPatient retrieves appointments for a patient
	ListByPatient(ctx context.Context, patientID string, filter AppointmentFilter) ([]*entities.Appointment, error)

	// ListConfirmedByDoctor retrieves all confirmed appointments for a
	// doctor, regardless of patient.
	ListConfirmedByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error)

	// ListStalePending retrieves in-progress appointments created before
	// the cutoff, for the expiry sweep.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	Status entities.AppointmentStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// AvailabilityRepository defines the interface for availability windows
type AvailabilityRepository interface {
	// GetByID retrieves an availability window by ID
	GetByID(ctx context.Context, id string) (*entities.Availability, error)

	// ListByDoctor retrieves all availability windows for a doctor
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Availability, error)
}
