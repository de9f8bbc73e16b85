package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/singul69/My-chat-app/internal/api/middleware"
	"github.com/singul69/My-chat-app/internal/billing"
	"github.com/singul69/My-chat-app/internal/store"
	"github.com/singul69/My-chat-app/internal/utils"
)

// POST /api/payments
// CreatePayment godoc
// @Summary Record a UPI payment claim
// @Description Stores the claim unverified; an administrator verifies it manually.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/payments [post]
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		unauthorizedResponse(w)
		return
	}

	var input struct {
		Amount        int64  `json:"amount"`
		TransactionID string `json:"transactionId"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	payment, err := h.billing.CreatePayment(r.Context(), user.ID, input.Amount, input.TransactionID)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidAmount) {
			utils.ValidationError(w, map[string]string{"amount": err.Error()})
			return
		}
		serverError(w, "creating payment", err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Payment recorded",
		Data:    payment,
	})
}

// GET /api/payments (admin)
// ListPayments godoc
// @Summary List all payments
// @Description Returns every payment claim, newest first. Admin only.
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/payments [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billing.ListPayments(r.Context())
	if err != nil {
		serverError(w, "listing payments", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    payments,
	})
}

// PUT /api/payments/{id}/verify (admin)
// VerifyPayment godoc
// @Summary Verify a payment
// @Description Marks the payment verified and upgrades the owning user to premium in the same transaction. Safe to repeat.
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/payments/{id}/verify [put]
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid payment ID",
		})
		return
	}

	payment, err := h.billing.VerifyPayment(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
				Success: false,
				Message: "Payment not found",
			})
			return
		}
		serverError(w, "verifying payment", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Payment verified",
		Data:    payment,
	})
}
