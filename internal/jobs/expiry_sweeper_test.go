package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// staleRepo serves a fixed set of stale bookings and records status flips.
type staleRepo struct {
	stale    []*entities.Appointment
	statuses map[string]entities.AppointmentStatus
}

func (r *staleRepo) Create(ctx context.Context, appointment *entities.Appointment) error { return nil }

func (r *staleRepo) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return nil, apperrors.NewNotFoundError("not found")
}

func (r *staleRepo) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	r.statuses[id] = status
	return nil
}

func (r *staleRepo) ConfirmIfUnclaimed(ctx context.Context, id string) error { return nil }

func (r *staleRepo) ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return nil, nil
}

func (r *staleRepo) ListConfirmedByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	return nil, nil
}

func (r *staleRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]*entities.Appointment, error) {
	return r.stale, nil
}

func TestExpirySweeper_RunOnce(t *testing.T) {
	repo := &staleRepo{
		stale: []*entities.Appointment{
			{ID: "appt-1", Status: entities.AppointmentStatusInProgress, SlotID: "av-1", DoctorID: "doc-1"},
			{ID: "appt-2", Status: entities.AppointmentStatusInProgress, SlotID: "av-2", DoctorID: "doc-1"},
		},
		statuses: make(map[string]entities.AppointmentStatus),
	}

	availability := services.NewAvailabilityService(nil, repo, nil, 30)
	booking := services.NewBookingService(repo, nil, nil, nil, nil, nil, availability)
	sweeper := NewExpirySweeper(booking, 30*time.Minute, "* * * * *")

	sweeper.RunOnce(context.Background())

	require.Len(t, repo.statuses, 2)
	assert.Equal(t, entities.AppointmentStatusExpired, repo.statuses["appt-1"])
	assert.Equal(t, entities.AppointmentStatusExpired, repo.statuses["appt-2"])
}
