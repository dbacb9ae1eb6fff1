package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/providers"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/observability"
	"github.com/healthhub/healthhub-backend/internal/scheduling"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// OnlineLocation is the location recorded for video consultations.
const OnlineLocation = "online"

// CreateBookingRequest is the input for claiming a slot.
type CreateBookingRequest struct {
	PatientID      string    `json:"patient_id"`
	AvailabilityID string    `json:"availability_id"`
	SlotStart      time.Time `json:"slot_start"`
}

// ConfirmBookingRequest is the input for paying and confirming a booking.
type ConfirmBookingRequest struct {
	AppointmentID   string `json:"appointment_id"`
	PatientID       string `json:"patient_id"`
	ClientSecret    string `json:"client_secret"`
	PaymentMethodID string `json:"payment_method_id"`
	BillingEmail    string `json:"billing_email"`
}

// BookingService drives the appointment lifecycle from slot claim to
// confirmation, cancellation and expiry.
type BookingService struct {
	appointmentRepo  repositories.AppointmentRepository
	availabilityRepo repositories.AvailabilityRepository
	patientRepo      repositories.PatientRepository
	paymentRepo      repositories.PaymentRepository
	paymentProvider  providers.PaymentProvider
	eventBus         providers.EventBus
	availability     *AvailabilityService
	now              func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointmentRepo repositories.AppointmentRepository,
	availabilityRepo repositories.AvailabilityRepository,
	patientRepo repositories.PatientRepository,
	paymentRepo repositories.PaymentRepository,
	paymentProvider providers.PaymentProvider,
	eventBus providers.EventBus,
	availability *AvailabilityService,
) *BookingService {
	return &BookingService{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		patientRepo:      patientRepo,
		paymentRepo:      paymentRepo,
		paymentProvider:  paymentProvider,
		eventBus:         eventBus,
		availability:     availability,
		now:              time.Now,
	}
}

// Create claims a slot as an in-progress booking awaiting payment. The slot
// must come from the availability's own expansion and must not already be
// confirmed by any patient.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*entities.Appointment, error) {
	if req.PatientID == "" || req.AvailabilityID == "" {
		return nil, apperrors.NewValidationError("patient id and availability id are required")
	}

	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient.Status != entities.ProfileStatusComplete {
		return nil, apperrors.NewValidationError("complete your health profile before booking")
	}

	availability, err := s.availabilityRepo.GetByID(ctx, req.AvailabilityID)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.Expand(availability)
	if err != nil {
		return nil, err
	}

	slot, ok := findSlot(slots, req.SlotStart)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("slot %s is not part of availability %s", req.SlotStart.Format(time.RFC3339), availability.ID))
	}
	if slot.Start.Before(s.now()) {
		return nil, apperrors.NewValidationError("slot is in the past")
	}

	confirmed, err := s.appointmentRepo.ListConfirmedByDoctor(ctx, availability.DoctorID)
	if err != nil {
		return nil, err
	}
	if res := scheduling.Resolve(availability.ID, slot.Start, confirmed, nil); !res.State.Selectable() {
		return nil, apperrors.NewConflictError("slot already confirmed by another patient")
	}

	now := s.now()
	id := uuid.New().String()
	appointment := &entities.Appointment{
		ID:          id,
		DoctorID:    availability.DoctorID,
		PatientID:   req.PatientID,
		Date:        slot.Start,
		Type:        availability.Mode,
		SlotID:      availability.ID,
		SlotPortion: slot.Portion,
		Location:    locationFor(availability),
		Price:       availability.Price,
		Status:      entities.AppointmentStatusInProgress,
		// The video room is named after the appointment itself.
		ChannelName: id,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.availability.InvalidateSlotView(ctx, availability.ID, req.PatientID)
	s.publish(ctx, entities.AppointmentEventCreated, appointment)

	return appointment, nil
}

// Confirm charges the payment method and promotes the booking to confirmed.
// The status flip is conditional: when another patient's confirmation for the
// same slot lands first, the charge is reported as a conflict and the booking
// stays pending.
func (s *BookingService) Confirm(ctx context.Context, req ConfirmBookingRequest) (*entities.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.PatientID != req.PatientID {
		return nil, apperrors.NewUnauthorizedError("appointment belongs to another patient")
	}

	switch appointment.Status {
	case entities.AppointmentStatusInProgress:
		// proceed
	case entities.AppointmentStatusConfirmed:
		// Confirm retry after a partial failure; report success.
		return appointment, nil
	default:
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("appointment is %s and can no longer be confirmed", appointment.Status))
	}

	result, err := s.paymentProvider.ConfirmPayment(ctx, req.ClientSecret, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if result.Status != providers.PaymentStatusSucceeded {
		return nil, apperrors.NewPaymentDeclinedError(
			fmt.Sprintf("payment finished with status %s", result.Status), nil)
	}

	if err := s.appointmentRepo.ConfirmIfUnclaimed(ctx, appointment.ID); err != nil {
		return nil, err
	}

	payment := &entities.Payment{
		AppointmentID:   appointment.ID,
		PatientID:       appointment.PatientID,
		PaymentMethodID: result.PaymentMethodID,
		Amount:          appointment.Price,
		DoctorID:        appointment.DoctorID,
		BillingEmail:    req.BillingEmail,
		CreatedAt:       s.now(),
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		// The appointment is confirmed; losing the payment row must not
		// undo that. Log and surface the appointment.
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("appointment_id", appointment.ID).
			Msg("confirmed appointment but failed to save payment record")
	}

	appointment.Status = entities.AppointmentStatusConfirmed
	appointment.UpdatedAt = s.now()

	s.availability.InvalidateSlotView(ctx, appointment.SlotID, appointment.PatientID)
	s.publish(ctx, entities.AppointmentEventConfirmed, appointment)

	return appointment, nil
}

// Cancel marks an unpaid booking canceled. Only the owner may cancel, and
// only while the booking is still awaiting payment. Canceled slots remain
// selectable for rebooking.
func (s *BookingService) Cancel(ctx context.Context, appointmentID, patientID string) (*entities.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.PatientID != patientID {
		return nil, apperrors.NewUnauthorizedError("appointment belongs to another patient")
	}

	switch appointment.Status {
	case entities.AppointmentStatusInProgress:
		// cancellable
	case entities.AppointmentStatusCanceled:
		return appointment, nil
	default:
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("appointment is %s and cannot be canceled", appointment.Status))
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, entities.AppointmentStatusCanceled); err != nil {
		return nil, err
	}

	appointment.Status = entities.AppointmentStatusCanceled
	appointment.UpdatedAt = s.now()

	s.availability.InvalidateSlotView(ctx, appointment.SlotID, appointment.PatientID)
	s.publish(ctx, entities.AppointmentEventCanceled, appointment)

	return appointment, nil
}

// Get returns an appointment with its derived presentation state. Only the
// owning patient may read it.
func (s *BookingService) Get(ctx context.Context, appointmentID, patientID string) (*entities.AppointmentView, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.PatientID != patientID {
		return nil, apperrors.NewUnauthorizedError("appointment belongs to another patient")
	}

	return s.view(appointment), nil
}

// ListByPatient returns a patient's appointments with presentation state.
func (s *BookingService) ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentFilter) ([]*entities.AppointmentView, error) {
	appointments, err := s.appointmentRepo.ListByPatient(ctx, patientID, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*entities.AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, s.view(appointment))
	}
	return views, nil
}

// ExpireStale marks in-progress bookings created before the cutoff as
// expired. It returns the number of bookings swept.
func (s *BookingService) ExpireStale(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.appointmentRepo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, appointment := range stale {
		if err := s.appointmentRepo.UpdateStatus(ctx, appointment.ID, entities.AppointmentStatusExpired); err != nil {
			observability.LoggerFromContext(ctx).Error().Err(err).
				Str("appointment_id", appointment.ID).
				Msg("failed to expire stale appointment")
			continue
		}

		appointment.Status = entities.AppointmentStatusExpired
		s.availability.InvalidateSlotView(ctx, appointment.SlotID, appointment.PatientID)
		s.publish(ctx, entities.AppointmentEventExpired, appointment)
		swept++
	}

	return swept, nil
}

// view derives countdown and call-join state. Only online confirmed
// appointments count down; the countdown never goes negative.
func (s *BookingService) view(appointment *entities.Appointment) *entities.AppointmentView {
	view := &entities.AppointmentView{Appointment: *appointment}

	if appointment.Type != entities.ModeOnline || appointment.Status != entities.AppointmentStatusConfirmed {
		return view
	}

	remaining := int64(appointment.Date.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	view.CountdownSeconds = &remaining
	view.CanJoinCall = remaining == 0

	return view
}

func (s *BookingService) publish(ctx context.Context, eventType entities.AppointmentEventType, appointment *entities.Appointment) {
	if s.eventBus == nil {
		return
	}

	event := &entities.AppointmentEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		SlotID:        appointment.SlotID,
		Date:          appointment.Date,
		OccurredAt:    s.now(),
	}

	for _, channel := range []string{providers.EventChannelAppointments, providers.DoctorChannel(appointment.DoctorID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("channel", channel).
				Msg("failed to publish appointment event")
		}
	}
}

func findSlot(slots []scheduling.Slot, start time.Time) (scheduling.Slot, bool) {
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return slot, true
		}
	}
	return scheduling.Slot{}, false
}

func locationFor(availability *entities.Availability) string {
	if availability.Mode == entities.ModeOnline {
		return OnlineLocation
	}
	if availability.Location != nil {
		return availability.Location.Address
	}
	return ""
}
