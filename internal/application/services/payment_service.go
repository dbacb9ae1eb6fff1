package services

import (
	"context"
	"math"
	"strings"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/providers"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/observability"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// PaymentService creates payment intents and serves payment history
type PaymentService struct {
	paymentRepo     repositories.PaymentRepository
	appointmentRepo repositories.AppointmentRepository
	doctorRepo      repositories.DoctorRepository
	paymentProvider providers.PaymentProvider
	defaultCurrency string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	appointmentRepo repositories.AppointmentRepository,
	doctorRepo repositories.DoctorRepository,
	paymentProvider providers.PaymentProvider,
	defaultCurrency string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		paymentProvider: paymentProvider,
		defaultCurrency: defaultCurrency,
	}
}

// CreateIntent registers a charge with the gateway and returns the client
// secret. Price arrives in major units and is converted to minor units.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64, currency string) (string, error) {
	if price <= 0 {
		return "", apperrors.NewValidationError("price must be positive")
	}

	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	amountMinorUnits := int64(math.Round(price * 100))
	intent, err := s.paymentProvider.CreatePaymentIntent(ctx, amountMinorUnits, currency)
	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}

// History returns a patient's payments joined with doctor and appointment
// context, newest first.
func (s *PaymentService) History(ctx context.Context, patientID string) ([]*entities.PaymentDetail, error) {
	payments, err := s.paymentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	details := make([]*entities.PaymentDetail, 0, len(payments))
	for _, payment := range payments {
		detail := &entities.PaymentDetail{Payment: *payment}

		if doctor, err := s.doctorRepo.GetByID(ctx, payment.DoctorID); err == nil {
			detail.DoctorName = doctor.FullName
		} else {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("doctor_id", payment.DoctorID).
				Msg("failed to load doctor for payment history")
		}

		if appointment, err := s.appointmentRepo.GetByID(ctx, payment.AppointmentID); err == nil {
			detail.AppointmentDate = appointment.Date
			detail.Type = appointment.Type
		} else {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("appointment_id", payment.AppointmentID).
				Msg("failed to load appointment for payment history")
		}

		details = append(details, detail)
	}

	return details, nil
}
