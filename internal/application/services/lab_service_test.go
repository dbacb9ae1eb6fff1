package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

func TestLabService_BookTest(t *testing.T) {
	t.Run("denormalizes lab and test details into the report", func(t *testing.T) {
		labRepo := new(MockLabRepository)
		reportRepo := new(MockLabReportRepository)
		service := services.NewLabService(labRepo, reportRepo)

		labRepo.On("GetTest", mock.Anything, "test-1").Return(&entities.LabTest{
			ID: "test-1", LabID: "lab-1", Name: "CBC", Category: "Hematology", Price: 25,
		}, nil)
		labRepo.On("GetByID", mock.Anything, "lab-1").Return(&entities.Lab{
			ID: "lab-1", Name: "City Diagnostics",
		}, nil)
		reportRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.LabReport) bool {
			return r.TestName == "CBC" &&
				r.LabName == "City Diagnostics" &&
				r.Status == entities.LabReportStatusBooked &&
				r.PatientID == "pat-1" &&
				r.ID != ""
		})).Return(nil)

		report, err := service.BookTest(context.Background(), "pat-1", "test-1")
		require.NoError(t, err)
		assert.Equal(t, float64(25), report.Price)
		reportRepo.AssertExpectations(t)
	})

	t.Run("rejects missing patient", func(t *testing.T) {
		service := services.NewLabService(new(MockLabRepository), new(MockLabReportRepository))

		_, err := service.BookTest(context.Background(), "", "test-1")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("propagates unknown test", func(t *testing.T) {
		labRepo := new(MockLabRepository)
		service := services.NewLabService(labRepo, new(MockLabReportRepository))

		labRepo.On("GetTest", mock.Anything, "nope").Return(nil, apperrors.NewNotFoundError("lab test not found"))

		_, err := service.BookTest(context.Background(), "pat-1", "nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestLabService_ListTests_ChecksLab(t *testing.T) {
	labRepo := new(MockLabRepository)
	service := services.NewLabService(labRepo, new(MockLabReportRepository))

	labRepo.On("GetByID", mock.Anything, "lab-gone").Return(nil, apperrors.NewNotFoundError("lab not found"))

	_, err := service.ListTests(context.Background(), "lab-gone")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
