package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// PaymentService defines the interface for payment operations
type PaymentService interface {
	CreateIntent(ctx context.Context, price float64, currency string) (string, error)
	History(ctx context.Context, patientID string) ([]*entities.PaymentDetail, error)
}

// PaymentHandler handles payment requests
type PaymentHandler struct {
	service PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

type createIntentRequest struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// CreatePaymentIntent handles POST /create-payment-intent. The mobile app
// sends the price in major units and receives the gateway client secret.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	clientSecret, err := h.service.CreateIntent(r.Context(), req.Price, req.Currency)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"clientSecret": clientSecret,
	})
}

// ListPayments handles GET /api/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	viewer := patientID(r)
	if viewer == "" {
		respondWithError(w, http.StatusBadRequest, "patient identity is required")
		return
	}

	payments, err := h.service.History(r.Context(), viewer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}
