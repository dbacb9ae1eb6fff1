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

var availabilityColumns = []interface{}{
	"id", "doctor_id", "date", "start_time", "end_time", "slot_duration",
	"mode", "address", "latitude", "longitude", "price",
}

// AvailabilityAdapter implements the AvailabilityRepository interface
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves an availability window by ID
func (a *AvailabilityAdapter) GetByID(ctx context.Context, id string) (*entities.Availability, error) {
	query, args, err := a.db.Select(availabilityColumns...).
		From("availabilities").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	availability, err := scanAvailability(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("availability with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get availability", err)
	}

	return availability, nil
}

// ListByDoctor retrieves all availability windows for a doctor
func (a *AvailabilityAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Availability, error) {
	query, args, err := a.db.Select(availabilityColumns...).
		From("availabilities").
		Where(goqu.Ex{"doctor_id": doctorID}).
		Order(goqu.I("date").Asc(), goqu.I("start_time").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list availabilities", err)
	}
	defer rows.Close()

	var availabilities []*entities.Availability
	for rows.Next() {
		availability, err := scanAvailability(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan availability", err)
		}
		availabilities = append(availabilities, availability)
	}

	return availabilities, nil
}

func scanAvailability(row rowScanner) (*entities.Availability, error) {
	availability := &entities.Availability{}
	var address sql.NullString
	var latitude, longitude sql.NullFloat64

	err := row.Scan(
		&availability.ID,
		&availability.DoctorID,
		&availability.Date,
		&availability.StartTime,
		&availability.EndTime,
		&availability.SlotDuration,
		&availability.Mode,
		&address,
		&latitude,
		&longitude,
		&availability.Price,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		availability.Location = &entities.Location{
			Address:   address.String,
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
		}
	}

	return availability, nil
}
