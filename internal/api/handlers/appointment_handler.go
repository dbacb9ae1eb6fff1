package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
)

// BookingService defines the interface for appointment lifecycle operations
type BookingService interface {
	Create(ctx context.Context, req services.CreateBookingRequest) (*entities.Appointment, error)
	Confirm(ctx context.Context, req services.ConfirmBookingRequest) (*entities.Appointment, error)
	Cancel(ctx context.Context, appointmentID, patientID string) (*entities.Appointment, error)
	Get(ctx context.Context, appointmentID, patientID string) (*entities.AppointmentView, error)
	ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentFilter) ([]*entities.AppointmentView, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service BookingService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service BookingService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.PatientID == "" {
		req.PatientID = patientID(r)
	}

	appointment, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// GetAppointment handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	view, err := h.service.Get(r.Context(), id, patientID(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	viewer := patientID(r)
	if viewer == "" {
		respondWithError(w, http.StatusBadRequest, "patient identity is required")
		return
	}

	filter := repositories.AppointmentFilter{
		Status: entities.AppointmentStatus(r.URL.Query().Get("status")),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid from date format (use RFC3339)")
			return
		}
		filter.From = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid to date format (use RFC3339)")
			return
		}
		filter.To = &to
	}

	views, err := h.service.ListByPatient(r.Context(), viewer, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": views,
		"count":        len(views),
	})
}

// ConfirmAppointment handles POST /api/appointments/{id}/confirm
func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var req services.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.AppointmentID = id
	if req.PatientID == "" {
		req.PatientID = patientID(r)
	}

	appointment, err := h.service.Confirm(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// CancelAppointment handles POST /api/appointments/{id}/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	appointment, err := h.service.Cancel(r.Context(), id, patientID(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}
