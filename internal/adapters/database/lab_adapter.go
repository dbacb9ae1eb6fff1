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

// LabAdapter implements the LabRepository interface
type LabAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLabAdapter creates a new lab adapter
func NewLabAdapter(client *postgres.Client) repositories.LabRepository {
	return &LabAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListApproved retrieves all approved labs
func (a *LabAdapter) ListApproved(ctx context.Context) ([]*entities.Lab, error) {
	query, args, err := a.db.Select(
		"id", "name", "address", "phone", "status", "created_at",
	).From("labs").
		Where(goqu.Ex{"status": "approved"}).
		Order(goqu.I("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list labs", err)
	}
	defer rows.Close()

	var labs []*entities.Lab
	for rows.Next() {
		lab := &entities.Lab{}
		err := rows.Scan(&lab.ID, &lab.Name, &lab.Address, &lab.Phone, &lab.Status, &lab.CreatedAt)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lab", err)
		}
		labs = append(labs, lab)
	}

	return labs, nil
}

// GetByID retrieves a lab by ID
func (a *LabAdapter) GetByID(ctx context.Context, id string) (*entities.Lab, error) {
	query, args, err := a.db.Select(
		"id", "name", "address", "phone", "status", "created_at",
	).From("labs").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	lab := &entities.Lab{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&lab.ID, &lab.Name, &lab.Address, &lab.Phone, &lab.Status, &lab.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lab with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lab", err)
	}

	return lab, nil
}

// ListTests retrieves the tests offered by a lab
func (a *LabAdapter) ListTests(ctx context.Context, labID string) ([]*entities.LabTest, error) {
	query, args, err := a.db.Select(
		"id", "lab_id", "name", "category", "price",
	).From("lab_tests").
		Where(goqu.Ex{"lab_id": labID}).
		Order(goqu.I("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list lab tests", err)
	}
	defer rows.Close()

	var tests []*entities.LabTest
	for rows.Next() {
		test := &entities.LabTest{}
		err := rows.Scan(&test.ID, &test.LabID, &test.Name, &test.Category, &test.Price)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lab test", err)
		}
		tests = append(tests, test)
	}

	return tests, nil
}

// GetTest retrieves a single lab test
func (a *LabAdapter) GetTest(ctx context.Context, testID string) (*entities.LabTest, error) {
	query, args, err := a.db.Select(
		"id", "lab_id", "name", "category", "price",
	).From("lab_tests").
		Where(goqu.Ex{"id": testID}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	test := &entities.LabTest{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&test.ID, &test.LabID, &test.Name, &test.Category, &test.Price,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lab test with id %s not found", testID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lab test", err)
	}

	return test, nil
}
