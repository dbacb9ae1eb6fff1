package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	tsclient "github.com/healthhub/healthhub-backend/internal/infrastructure/clients/typesense"
)

const collectionName = "doctors"

// TypesenseAdapter implements doctor discovery search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DoctorSearchRepository
var _ repositories.DoctorSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "full_name", Type: "string"},
			{Name: "specialist", Type: "string", Facet: pointer.True()},
			{Name: "experience", Type: "float"},
			{Name: "is_approved", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a doctor into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, doctor *entities.Doctor) error {
	document := map[string]interface{}{
		"id":          doctor.ID,
		"full_name":   doctor.FullName,
		"specialist":  doctor.Specialist,
		"experience":  doctor.Experience,
		"is_approved": doctor.Status == entities.DoctorStatusApproved,
		"created_at":  doctor.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index doctor: %w", err)
	}

	return nil
}

// Search finds approved doctors by name or specialty
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Doctor, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("full_name,specialist"),
		FilterBy: pointer.String("is_approved:=true"),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}

	doctors := []*entities.Doctor{}
	if result.Hits == nil {
		return doctors, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense documents arrive as map[string]interface{}.
		doctor := &entities.Doctor{
			ID:         stringField(doc, "id"),
			FullName:   stringField(doc, "full_name"),
			Specialist: stringField(doc, "specialist"),
			Status:     entities.DoctorStatusApproved,
		}
		if experience, ok := doc["experience"].(float64); ok {
			doctor.Experience = experience
		}
		if createdAt, ok := doc["created_at"].(float64); ok {
			doctor.CreatedAt = time.Unix(int64(createdAt), 0)
		}

		doctors = append(doctors, doctor)
	}

	return doctors, nil
}

func stringField(doc map[string]interface{}, key string) string {
	if value, ok := doc[key].(string); ok {
		return value
	}
	return ""
}
