package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// DoctorService defines the interface for doctor discovery operations
type DoctorService interface {
	Get(ctx context.Context, id string) (*entities.Doctor, error)
	List(ctx context.Context) ([]*entities.Doctor, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Doctor, error)
}

// ScheduleService defines the interface for schedule and slot views
type ScheduleService interface {
	GetSchedule(ctx context.Context, doctorID string, mode entities.ConsultationMode) ([]services.ScheduleDay, error)
	GetDaySlots(ctx context.Context, availabilityID, viewerID string) (*services.DaySlotView, error)
}

// DoctorHandler handles doctor discovery and schedule requests
type DoctorHandler struct {
	doctors  DoctorService
	schedule ScheduleService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctors DoctorService, schedule ScheduleService) *DoctorHandler {
	return &DoctorHandler{
		doctors:  doctors,
		schedule: schedule,
	}
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// SearchDoctors handles GET /api/doctors/search
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	doctors, err := h.doctors.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	doctor, err := h.doctors.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// GetSchedule handles GET /api/doctors/{id}/schedule
func (h *DoctorHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	mode := entities.ConsultationMode(r.URL.Query().Get("mode"))
	switch mode {
	case "", entities.ModeOnline, entities.ModePhysical:
		// valid
	default:
		respondWithError(w, http.StatusBadRequest, "mode must be online or physical")
		return
	}

	days, err := h.schedule.GetSchedule(r.Context(), id, mode)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"days":  days,
		"count": len(days),
	})
}

// GetDaySlots handles GET /api/availabilities/{id}/slots
func (h *DoctorHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "availability ID is required")
		return
	}

	view, err := h.schedule.GetDaySlots(r.Context(), id, patientID(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}
