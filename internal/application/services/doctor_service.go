package services

import (
	"context"
	"strings"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/observability"
)

// DoctorService serves doctor discovery and profiles
type DoctorService struct {
	doctorRepo repositories.DoctorRepository
	searchRepo repositories.DoctorSearchRepository
}

// NewDoctorService creates a new doctor service. searchRepo may be nil, in
// which case search falls back to a database scan.
func NewDoctorService(
	doctorRepo repositories.DoctorRepository,
	searchRepo repositories.DoctorSearchRepository,
) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		searchRepo: searchRepo,
	}
}

// Get retrieves a doctor profile
func (s *DoctorService) Get(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.doctorRepo.GetByID(ctx, id)
}

// List returns all approved doctors
func (s *DoctorService) List(ctx context.Context) ([]*entities.Doctor, error) {
	return s.doctorRepo.ListApproved(ctx)
}

// Search finds approved doctors by name or specialty. A blank query lists
// everyone. When the search index is unavailable the database serves a
// substring fallback so discovery keeps working.
func (s *DoctorService) Search(ctx context.Context, query string, limit int) ([]*entities.Doctor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.doctorRepo.ListApproved(ctx)
	}

	if s.searchRepo != nil {
		doctors, err := s.searchRepo.Search(ctx, query, limit)
		if err == nil {
			return doctors, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("query", query).
			Msg("search index unavailable, falling back to database scan")
	}

	all, err := s.doctorRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matched []*entities.Doctor
	for _, doctor := range all {
		if strings.Contains(strings.ToLower(doctor.FullName), needle) ||
			strings.Contains(strings.ToLower(doctor.Specialist), needle) {
			matched = append(matched, doctor)
		}
		if limit > 0 && len(matched) >= limit {
			break
		}
	}

	return matched, nil
}

// SyncSearchIndex pushes all approved doctors into the search index.
func (s *DoctorService) SyncSearchIndex(ctx context.Context) error {
	if s.searchRepo == nil {
		return nil
	}

	if err := s.searchRepo.InitSchema(ctx); err != nil {
		return err
	}

	doctors, err := s.doctorRepo.ListApproved(ctx)
	if err != nil {
		return err
	}

	for _, doctor := range doctors {
		if err := s.searchRepo.Index(ctx, doctor); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("doctor_id", doctor.ID).
				Msg("failed to index doctor")
		}
	}

	return nil
}
