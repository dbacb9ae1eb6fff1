package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// PatientService defines the interface for patient profile operations
type PatientService interface {
	Get(ctx context.Context, id string) (*entities.Patient, error)
	Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	BloodBanks(ctx context.Context) ([]*entities.BloodBank, error)
}

// PatientHandler handles patient profile requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{
		service: service,
	}
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	patient, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// SavePatient handles PUT /api/patients/{id}
func (h *PatientHandler) SavePatient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	var patient entities.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	patient.ID = id

	saved, err := h.service.Save(r.Context(), &patient)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, saved)
}

// ListBloodBanks handles GET /api/blood-banks
func (h *PatientHandler) ListBloodBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.BloodBanks(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"blood_banks": banks,
		"count":       len(banks),
	})
}
