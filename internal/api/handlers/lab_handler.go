package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// LabService defines the interface for lab discovery and test booking
type LabService interface {
	ListLabs(ctx context.Context) ([]*entities.Lab, error)
	ListTests(ctx context.Context, labID string) ([]*entities.LabTest, error)
	BookTest(ctx context.Context, patientID, testID string) (*entities.LabReport, error)
	Reports(ctx context.Context, patientID string) ([]*entities.LabReport, error)
}

// LabHandler handles lab requests
type LabHandler struct {
	service LabService
}

// NewLabHandler creates a new lab handler
func NewLabHandler(service LabService) *LabHandler {
	return &LabHandler{
		service: service,
	}
}

// ListLabs handles GET /api/labs
func (h *LabHandler) ListLabs(w http.ResponseWriter, r *http.Request) {
	labs, err := h.service.ListLabs(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"labs":  labs,
		"count": len(labs),
	})
}

// ListTests handles GET /api/labs/{id}/tests
func (h *LabHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "lab ID is required")
		return
	}

	tests, err := h.service.ListTests(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tests": tests,
		"count": len(tests),
	})
}

type bookTestRequest struct {
	TestID string `json:"test_id"`
}

// BookTest handles POST /api/lab-reports
func (h *LabHandler) BookTest(w http.ResponseWriter, r *http.Request) {
	var req bookTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	report, err := h.service.BookTest(r.Context(), patientID(r), req.TestID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, report)
}

// ListReports handles GET /api/lab-reports
func (h *LabHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	viewer := patientID(r)
	if viewer == "" {
		respondWithError(w, http.StatusBadRequest, "patient identity is required")
		return
	}

	reports, err := h.service.Reports(r.Context(), viewer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}
