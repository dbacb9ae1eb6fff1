package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

func TestDoctorService_Search(t *testing.T) {
	doctors := []*entities.Doctor{
		{ID: "doc-1", FullName: "Asha Verma", Specialist: "Cardiologist", Status: entities.DoctorStatusApproved},
		{ID: "doc-2", FullName: "Ben Okafor", Specialist: "Dermatologist", Status: entities.DoctorStatusApproved},
	}

	t.Run("blank query lists approved doctors", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		searchRepo := new(MockDoctorSearchRepository)
		service := services.NewDoctorService(doctorRepo, searchRepo)

		doctorRepo.On("ListApproved", mock.Anything).Return(doctors, nil)

		result, err := service.Search(context.Background(), "  ", 10)
		require.NoError(t, err)
		assert.Len(t, result, 2)
		searchRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uses the search index when available", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		searchRepo := new(MockDoctorSearchRepository)
		service := services.NewDoctorService(doctorRepo, searchRepo)

		searchRepo.On("Search", mock.Anything, "cardio", 10).Return(doctors[:1], nil)

		result, err := service.Search(context.Background(), "cardio", 10)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "doc-1", result[0].ID)
	})

	t.Run("falls back to database scan when index fails", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		searchRepo := new(MockDoctorSearchRepository)
		service := services.NewDoctorService(doctorRepo, searchRepo)

		searchRepo.On("Search", mock.Anything, "derma", 10).Return(nil, errors.New("connection refused"))
		doctorRepo.On("ListApproved", mock.Anything).Return(doctors, nil)

		result, err := service.Search(context.Background(), "derma", 10)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "doc-2", result[0].ID)
	})

	t.Run("works without a search index at all", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		service := services.NewDoctorService(doctorRepo, nil)

		doctorRepo.On("ListApproved", mock.Anything).Return(doctors, nil)

		result, err := service.Search(context.Background(), "verma", 10)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "doc-1", result[0].ID)
	})
}

func TestDoctorService_SyncSearchIndex(t *testing.T) {
	doctorRepo := new(MockDoctorRepository)
	searchRepo := new(MockDoctorSearchRepository)
	service := services.NewDoctorService(doctorRepo, searchRepo)

	doctors := []*entities.Doctor{
		{ID: "doc-1", FullName: "Asha Verma", Status: entities.DoctorStatusApproved},
	}
	searchRepo.On("InitSchema", mock.Anything).Return(nil)
	doctorRepo.On("ListApproved", mock.Anything).Return(doctors, nil)
	searchRepo.On("Index", mock.Anything, doctors[0]).Return(nil)

	require.NoError(t, service.SyncSearchIndex(context.Background()))
	searchRepo.AssertExpectations(t)
}
