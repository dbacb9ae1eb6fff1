package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/providers"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/observability"
	"github.com/healthhub/healthhub-backend/internal/scheduling"
)

// DaySlotView is the server-computed slot picker for one availability window.
// Every slot arrives annotated with its booking state for the viewer, so the
// client renders without re-deriving any scheduling rules.
type DaySlotView struct {
	AvailabilityID string                    `json:"availability_id"`
	DoctorID       string                    `json:"doctor_id"`
	Date           string                    `json:"date"`
	Mode           entities.ConsultationMode `json:"mode"`
	Location       *entities.Location        `json:"location,omitempty"`
	Price          float64                   `json:"price"`
	Slots          []scheduling.ResolvedSlot `json:"slots"`
}

// ScheduleDay is one date of a doctor's schedule with its windows.
type ScheduleDay struct {
	Date           string                   `json:"date"`
	Availabilities []*entities.Availability `json:"availabilities"`
}

// AvailabilityService computes doctor schedules and per-day slot views
type AvailabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	appointmentRepo  repositories.AppointmentRepository
	cache            providers.CacheProvider
	slotViewTTL      int
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	availabilityRepo repositories.AvailabilityRepository,
	appointmentRepo repositories.AppointmentRepository,
	cache providers.CacheProvider,
	slotViewTTL int,
) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		cache:            cache,
		slotViewTTL:      slotViewTTL,
	}
}

// GetSchedule returns a doctor's availability windows grouped by date in
// ascending calendar order. An empty mode returns both consultation modes.
func (s *AvailabilityService) GetSchedule(ctx context.Context, doctorID string, mode entities.ConsultationMode) ([]ScheduleDay, error) {
	availabilities, err := s.availabilityRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if mode != "" {
		availabilities = scheduling.FilterMode(availabilities, mode)
	}

	grouped := scheduling.GroupByDate(availabilities)
	days := make([]ScheduleDay, 0, len(grouped))
	for _, date := range scheduling.SortedDates(grouped) {
		days = append(days, ScheduleDay{
			Date:           date,
			Availabilities: grouped[date],
		})
	}

	return days, nil
}

// GetDaySlots expands one availability window into slots and resolves each
// slot's booking state for the viewer. The view is cached briefly per viewer;
// booking mutations invalidate it.
func (s *AvailabilityService) GetDaySlots(ctx context.Context, availabilityID, viewerID string) (*DaySlotView, error) {
	cacheKey := slotViewCacheKey(availabilityID, viewerID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			view := &DaySlotView{}
			if err := json.Unmarshal(data, view); err == nil {
				return view, nil
			}
		}
	}

	availability, err := s.availabilityRepo.GetByID(ctx, availabilityID)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.Expand(availability)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.appointmentRepo.ListConfirmedByDoctor(ctx, availability.DoctorID)
	if err != nil {
		return nil, err
	}

	var viewerOwned []*entities.Appointment
	if viewerID != "" {
		viewerOwned, err = s.appointmentRepo.ListByPatient(ctx, viewerID, repositories.AppointmentFilter{})
		if err != nil {
			return nil, err
		}
	}

	view := &DaySlotView{
		AvailabilityID: availability.ID,
		DoctorID:       availability.DoctorID,
		Date:           availability.Date,
		Mode:           availability.Mode,
		Location:       availability.Location,
		Price:          availability.Price,
		Slots:          scheduling.ResolveAll(slots, confirmed, viewerOwned),
	}

	if s.cache != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.slotViewTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache slot view")
			}
		}
	}

	return view, nil
}

// InvalidateSlotView drops the cached view for one availability and viewer.
func (s *AvailabilityService) InvalidateSlotView(ctx context.Context, availabilityID, viewerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, slotViewCacheKey(availabilityID, viewerID)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to invalidate slot view")
	}
}

func slotViewCacheKey(availabilityID, viewerID string) string {
	return fmt.Sprintf("slotview:%s:%s", availabilityID, viewerID)
}
