package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/scheduling"
)

func TestAvailabilityService_GetSchedule(t *testing.T) {
	availabilityRepo := new(MockAvailabilityRepository)
	appointmentRepo := new(MockAppointmentRepository)
	service := services.NewAvailabilityService(availabilityRepo, appointmentRepo, nil, 30)

	availabilityRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Availability{
		{ID: "a", DoctorID: "doc-1", Date: "2026-10-02", Mode: entities.ModeOnline},
		{ID: "b", DoctorID: "doc-1", Date: "2026-10-01", Mode: entities.ModeOnline},
		{ID: "c", DoctorID: "doc-1", Date: "2026-10-01", Mode: entities.ModePhysical},
	}, nil)

	t.Run("groups by date in calendar order", func(t *testing.T) {
		days, err := service.GetSchedule(context.Background(), "doc-1", "")
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2026-10-01", days[0].Date)
		assert.Len(t, days[0].Availabilities, 2)
		assert.Equal(t, "2026-10-02", days[1].Date)
	})

	t.Run("filters by consultation mode", func(t *testing.T) {
		days, err := service.GetSchedule(context.Background(), "doc-1", entities.ModePhysical)
		require.NoError(t, err)
		require.Len(t, days, 1)
		require.Len(t, days[0].Availabilities, 1)
		assert.Equal(t, "c", days[0].Availabilities[0].ID)
	})
}

func TestAvailabilityService_GetDaySlots(t *testing.T) {
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	setup := func(cacheTTL int) (*MockAvailabilityRepository, *MockAppointmentRepository, *memoryCache, *services.AvailabilityService) {
		availabilityRepo := new(MockAvailabilityRepository)
		appointmentRepo := new(MockAppointmentRepository)
		cache := newMemoryCache()
		service := services.NewAvailabilityService(availabilityRepo, appointmentRepo, cache, cacheTTL)
		return availabilityRepo, appointmentRepo, cache, service
	}

	t.Run("annotates every slot with viewer state", func(t *testing.T) {
		availabilityRepo, appointmentRepo, _, service := setup(30)

		availabilityRepo.On("GetByID", mock.Anything, "av-1").Return(onlineAvailability(start), nil)
		appointmentRepo.On("ListConfirmedByDoctor", mock.Anything, "doc-1").Return([]*entities.Appointment{
			{ID: "other", SlotID: "av-1", Date: start, Status: entities.AppointmentStatusConfirmed},
		}, nil)
		appointmentRepo.On("ListByPatient", mock.Anything, "pat-1", repositories.AppointmentFilter{}).Return([]*entities.Appointment{
			{ID: "mine", SlotID: "av-1", Date: start.Add(30 * time.Minute), Status: entities.AppointmentStatusInProgress},
		}, nil)

		view, err := service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.NoError(t, err)

		// 09:00, 09:30 and the inclusive 10:00 boundary.
		require.Len(t, view.Slots, 3)
		assert.Equal(t, scheduling.StateConfirmed, view.Slots[0].State)
		assert.False(t, view.Slots[0].Selectable)
		assert.Equal(t, scheduling.StatePending, view.Slots[1].State)
		assert.Equal(t, "mine", view.Slots[1].AppointmentID)
		assert.Equal(t, scheduling.StateFree, view.Slots[2].State)
		assert.True(t, view.Slots[2].Selectable)
	})

	t.Run("serves the cached view on repeat reads", func(t *testing.T) {
		availabilityRepo, appointmentRepo, _, service := setup(30)

		availabilityRepo.On("GetByID", mock.Anything, "av-1").Return(onlineAvailability(start), nil).Once()
		appointmentRepo.On("ListConfirmedByDoctor", mock.Anything, "doc-1").Return([]*entities.Appointment{}, nil).Once()
		appointmentRepo.On("ListByPatient", mock.Anything, "pat-1", repositories.AppointmentFilter{}).Return([]*entities.Appointment{}, nil).Once()

		first, err := service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.NoError(t, err)

		second, err := service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.NoError(t, err)

		assert.Equal(t, first.AvailabilityID, second.AvailabilityID)
		assert.Len(t, second.Slots, len(first.Slots))
		availabilityRepo.AssertExpectations(t)
	})

	t.Run("invalidation forces a fresh view", func(t *testing.T) {
		availabilityRepo, appointmentRepo, _, service := setup(30)

		availabilityRepo.On("GetByID", mock.Anything, "av-1").Return(onlineAvailability(start), nil).Twice()
		appointmentRepo.On("ListConfirmedByDoctor", mock.Anything, "doc-1").Return([]*entities.Appointment{}, nil).Twice()
		appointmentRepo.On("ListByPatient", mock.Anything, "pat-1", repositories.AppointmentFilter{}).Return([]*entities.Appointment{}, nil).Twice()

		_, err := service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.NoError(t, err)

		service.InvalidateSlotView(context.Background(), "av-1", "pat-1")

		_, err = service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.NoError(t, err)

		availabilityRepo.AssertExpectations(t)
	})

	t.Run("broken window surfaces a validation error", func(t *testing.T) {
		availabilityRepo, _, _, service := setup(30)

		broken := onlineAvailability(start)
		broken.SlotDuration = 0
		availabilityRepo.On("GetByID", mock.Anything, "av-1").Return(broken, nil)

		_, err := service.GetDaySlots(context.Background(), "av-1", "pat-1")
		require.Error(t, err)
	})
}
