package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// PaymentAdapter implements the PaymentRepository interface
type PaymentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPaymentAdapter creates a new payment adapter
func NewPaymentAdapter(client *postgres.Client) repositories.PaymentRepository {
	return &PaymentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Save persists a payment keyed by appointment id. A second save for the same
// appointment overwrites the existing row, keeping confirm retries safe.
func (a *PaymentAdapter) Save(ctx context.Context, payment *entities.Payment) error {
	record := goqu.Record{
		"appointment_id":    payment.AppointmentID,
		"patient_id":        payment.PatientID,
		"payment_method_id": payment.PaymentMethodID,
		"amount":            payment.Amount,
		"doctor_id":         payment.DoctorID,
		"billing_email":     payment.BillingEmail,
		"created_at":        payment.CreatedAt,
	}

	query, args, err := a.db.Insert("payments").
		Rows(record).
		OnConflict(goqu.DoUpdate("appointment_id", goqu.Record{
			"payment_method_id": payment.PaymentMethodID,
			"amount":            payment.Amount,
			"billing_email":     payment.BillingEmail,
		})).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to save payment", err)
	}

	return nil
}

// GetByAppointment retrieves the payment for an appointment
func (a *PaymentAdapter) GetByAppointment(ctx context.Context, appointmentID string) (*entities.Payment, error) {
	query, args, err := a.db.Select(
		"appointment_id", "patient_id", "payment_method_id",
		"amount", "doctor_id", "billing_email", "created_at",
	).From("payments").
		Where(goqu.Ex{"appointment_id": appointmentID}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	payment := &entities.Payment{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&payment.AppointmentID,
		&payment.PatientID,
		&payment.PaymentMethodID,
		&payment.Amount,
		&payment.DoctorID,
		&payment.BillingEmail,
		&payment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment for appointment %s not found", appointmentID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get payment", err)
	}

	return payment, nil
}

// ListByPatient retrieves all payments made by a patient, joined with doctor
// and appointment context for the payment history view.
func (a *PaymentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Payment, error) {
	query, args, err := a.db.Select(
		"appointment_id", "patient_id", "payment_method_id",
		"amount", "doctor_id", "billing_email", "created_at",
	).From("payments").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payments", err)
	}
	defer rows.Close()

	var payments []*entities.Payment
	for rows.Next() {
		payment := &entities.Payment{}
		err := rows.Scan(
			&payment.AppointmentID,
			&payment.PatientID,
			&payment.PaymentMethodID,
			&payment.Amount,
			&payment.DoctorID,
			&payment.BillingEmail,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan payment", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}
