package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/api/handlers"
	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// MockBookingService defines the mock booking service
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, req services.CreateBookingRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, req services.ConfirmBookingRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, appointmentID, patientID string) (*entities.Appointment, error) {
	args := m.Called(ctx, appointmentID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, appointmentID, patientID string) (*entities.AppointmentView, error) {
	args := m.Called(ctx, appointmentID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppointmentView), args.Error(1)
}

func (m *MockBookingService) ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentFilter) ([]*entities.AppointmentView, error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AppointmentView), args.Error(1)
}

func newRouterWith(service handlers.BookingService) http.Handler {
	mux := http.NewServeMux()
	handler := handlers.NewAppointmentHandler(service)
	mux.HandleFunc("POST /api/appointments", handler.CreateAppointment)
	mux.HandleFunc("GET /api/appointments/{id}", handler.GetAppointment)
	mux.HandleFunc("POST /api/appointments/{id}/confirm", handler.ConfirmAppointment)
	mux.HandleFunc("POST /api/appointments/{id}/cancel", handler.CancelAppointment)
	return mux
}

func TestAppointmentHandler_CreateAppointment(t *testing.T) {
	t.Run("creates a pending appointment", func(t *testing.T) {
		mockService := new(MockBookingService)
		start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req services.CreateBookingRequest) bool {
			return req.PatientID == "pat-1" && req.AvailabilityID == "av-1" && req.SlotStart.Equal(start)
		})).Return(&entities.Appointment{
			ID:     "appt-1",
			Status: entities.AppointmentStatusInProgress,
		}, nil)

		body, _ := json.Marshal(services.CreateBookingRequest{
			AvailabilityID: "av-1",
			SlotStart:      start,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var created entities.Appointment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "appt-1", created.ID)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		mockService := new(MockBookingService)

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps conflict to 409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewConflictError("slot already confirmed by another patient"))

		body, _ := json.Marshal(services.CreateBookingRequest{AvailabilityID: "av-1"})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAppointmentHandler_ConfirmAppointment(t *testing.T) {
	t.Run("confirms with payment details", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Confirm", mock.Anything, mock.MatchedBy(func(req services.ConfirmBookingRequest) bool {
			return req.AppointmentID == "appt-1" &&
				req.PatientID == "pat-1" &&
				req.PaymentMethodID == "pm_1"
		})).Return(&entities.Appointment{
			ID:     "appt-1",
			Status: entities.AppointmentStatusConfirmed,
		}, nil)

		body, _ := json.Marshal(services.ConfirmBookingRequest{
			ClientSecret:    "pi_1_secret_x",
			PaymentMethodID: "pm_1",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/confirm", bytes.NewReader(body))
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps declined payment to 402", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Confirm", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewPaymentDeclinedError("card declined", nil))

		body, _ := json.Marshal(services.ConfirmBookingRequest{PaymentMethodID: "pm_1"})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/confirm", bytes.NewReader(body))
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("maps gateway failure to 502", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Confirm", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewPaymentGatewayError("gateway timed out", nil))

		body, _ := json.Marshal(services.ConfirmBookingRequest{PaymentMethodID: "pm_1"})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/confirm", bytes.NewReader(body))
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestAppointmentHandler_GetAppointment(t *testing.T) {
	t.Run("returns the view with countdown", func(t *testing.T) {
		mockService := new(MockBookingService)
		countdown := int64(600)
		mockService.On("Get", mock.Anything, "appt-1", "pat-1").Return(&entities.AppointmentView{
			Appointment: entities.Appointment{
				ID:     "appt-1",
				Type:   entities.ModeOnline,
				Status: entities.AppointmentStatusConfirmed,
			},
			CountdownSeconds: &countdown,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/appointments/appt-1", nil)
		req.Header.Set("X-Patient-ID", "pat-1")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var view entities.AppointmentView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.NotNil(t, view.CountdownSeconds)
		assert.Equal(t, int64(600), *view.CountdownSeconds)
	})

	t.Run("maps missing appointment to 404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Get", mock.Anything, "nope", mock.Anything).
			Return(nil, apperrors.NewNotFoundError("appointment with id nope not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/appointments/nope", nil)
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("maps foreign appointment to 401", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Get", mock.Anything, "appt-1", "intruder").
			Return(nil, apperrors.NewUnauthorizedError("appointment belongs to another patient"))

		req := httptest.NewRequest(http.MethodGet, "/api/appointments/appt-1", nil)
		req.Header.Set("X-Patient-ID", "intruder")
		rec := httptest.NewRecorder()

		newRouterWith(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAppointmentHandler_CancelAppointment(t *testing.T) {
	mockService := new(MockBookingService)
	mockService.On("Cancel", mock.Anything, "appt-1", "pat-1").Return(&entities.Appointment{
		ID:     "appt-1",
		Status: entities.AppointmentStatusCanceled,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/cancel", nil)
	req.Header.Set("X-Patient-ID", "pat-1")
	rec := httptest.NewRecorder()

	newRouterWith(mockService).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var canceled entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canceled))
	assert.Equal(t, entities.AppointmentStatusCanceled, canceled.Status)
}
