package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "doctor_id", "patient_id", "date", "type", "slot_id",
	"slot_portion", "location", "price", "status", "channel_name",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":           appointment.ID,
		"doctor_id":    appointment.DoctorID,
		"patient_id":   appointment.PatientID,
		"date":         appointment.Date,
		"type":         appointment.Type,
		"slot_id":      appointment.SlotID,
		"slot_portion": appointment.SlotPortion,
		"location":     appointment.Location,
		"price":        appointment.Price,
		"status":       appointment.Status,
		"channel_name": appointment.ChannelName,
		"created_at":   appointment.CreatedAt,
		"updated_at":   appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// UpdateStatus sets the appointment status unconditionally
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

// ConfirmIfUnclaimed sets status to confirmed only when no sibling appointment
// already holds confirmed for the same (slot_id, date). The guard runs inside
// the UPDATE itself so two concurrent confirmations cannot both win.
func (a *AppointmentAdapter) ConfirmIfUnclaimed(ctx context.Context, id string) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"status":     entities.AppointmentStatusConfirmed,
			"updated_at": time.Now(),
		}).
		Where(
			goqu.Ex{"id": id},
			goqu.L(
				`NOT EXISTS (SELECT 1 FROM appointments sibling
					WHERE sibling.slot_id = appointments.slot_id
					AND sibling.date = appointments.date
					AND sibling.status = ?
					AND sibling.id <> appointments.id)`,
				string(entities.AppointmentStatusConfirmed),
			),
		).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build confirm query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to confirm appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		// Distinguish a missing appointment from a lost race.
		if _, getErr := a.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.NewConflictError("slot already confirmed by another patient")
	}

	return nil
}

// ListByPatient retrieves appointments for a patient
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"patient_id": patientID})

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	if filter.From != nil {
		ds = ds.Where(goqu.C("date").Gte(*filter.From))
	}

	if filter.To != nil {
		ds = ds.Where(goqu.C("date").Lte(*filter.To))
	}

	ds = ds.Order(goqu.I("date").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.list(ctx, ds)
}

// ListConfirmedByDoctor retrieves all confirmed appointments for a doctor
func (a *AppointmentAdapter) ListConfirmedByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{
			"doctor_id": doctorID,
			"status":    entities.AppointmentStatusConfirmed,
		}).
		Order(goqu.I("date").Asc())

	return a.list(ctx, ds)
}

// ListStalePending retrieves in-progress appointments created before the cutoff
func (a *AppointmentAdapter) ListStalePending(ctx context.Context, cutoff time.Time) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(
			goqu.Ex{"status": entities.AppointmentStatusInProgress},
			goqu.C("created_at").Lt(cutoff),
		).
		Order(goqu.I("created_at").Asc())

	return a.list(ctx, ds)
}

func (a *AppointmentAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Appointment, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var location sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.DoctorID,
		&appointment.PatientID,
		&appointment.Date,
		&appointment.Type,
		&appointment.SlotID,
		&appointment.SlotPortion,
		&location,
		&appointment.Price,
		&appointment.Status,
		&appointment.ChannelName,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Location = location.String
	return appointment, nil
}
