package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// BloodBankAdapter implements the BloodBankRepository interface
type BloodBankAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBloodBankAdapter creates a new blood bank adapter
func NewBloodBankAdapter(client *postgres.Client) repositories.BloodBankRepository {
	return &BloodBankAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all blood banks
func (a *BloodBankAdapter) List(ctx context.Context) ([]*entities.BloodBank, error) {
	query, args, err := a.db.Select(
		"id", "name", "address", "phone", "blood_groups",
	).From("blood_banks").
		Order(goqu.I("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list blood banks", err)
	}
	defer rows.Close()

	var banks []*entities.BloodBank
	for rows.Next() {
		bank := &entities.BloodBank{}
		err := rows.Scan(
			&bank.ID,
			&bank.Name,
			&bank.Address,
			&bank.Phone,
			pq.Array(&bank.BloodGroups),
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan blood bank", err)
		}
		banks = append(banks, bank)
	}

	return banks, nil
}
