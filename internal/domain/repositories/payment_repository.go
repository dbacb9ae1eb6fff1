package repositories

import (
	"context"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// PaymentRepository defines the interface for payment records
type PaymentRepository interface {
	// Save persists a payment keyed by appointment id. Saving twice for the
	// same appointment overwrites rather than duplicating, so a confirm
	// retry after a partial failure is safe.
	Save(ctx context.Context, payment *entities.Payment) error

	// GetByAppointment retrieves the payment for an appointment
	GetByAppointment(ctx context.Context, appointmentID string) (*entities.Payment, error)

	// ListByPatient retrieves all payments made by a patient
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Payment, error)
}
