package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// MedicineService defines the interface for medicine history operations
type MedicineService interface {
	Add(ctx context.Context, record *entities.MedicineRecord) (*entities.MedicineRecord, error)
	History(ctx context.Context, patientID string) ([]*entities.MedicineRecord, error)
	Update(ctx context.Context, patientID string, record *entities.MedicineRecord) (*entities.MedicineRecord, error)
	Delete(ctx context.Context, patientID, recordID string) error
}

// MedicineHandler handles medicine history requests
type MedicineHandler struct {
	service MedicineService
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(service MedicineService) *MedicineHandler {
	return &MedicineHandler{
		service: service,
	}
}

// AddMedicine handles POST /api/medicines
func (h *MedicineHandler) AddMedicine(w http.ResponseWriter, r *http.Request) {
	var record entities.MedicineRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if record.PatientID == "" {
		record.PatientID = patientID(r)
	}

	saved, err := h.service.Add(r.Context(), &record)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, saved)
}

// ListMedicines handles GET /api/medicines
func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	viewer := patientID(r)
	if viewer == "" {
		respondWithError(w, http.StatusBadRequest, "patient identity is required")
		return
	}

	records, err := h.service.History(r.Context(), viewer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"medicines": records,
		"count":     len(records),
	})
}

// UpdateMedicine handles PUT /api/medicines/{id}
func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "medicine record ID is required")
		return
	}

	var record entities.MedicineRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	record.ID = id

	updated, err := h.service.Update(r.Context(), patientID(r), &record)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteMedicine handles DELETE /api/medicines/{id}
func (h *MedicineHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "medicine record ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), patientID(r), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
