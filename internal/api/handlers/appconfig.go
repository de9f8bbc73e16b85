package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
	"github.com/singul69/My-chat-app/internal/utils"
)

// GET /api/config
// GetAppConfig godoc
// @Summary Get the app configuration
// @Description Returns the UPI payment details, companion names, and home-screen copy.
// @Tags Config
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/config [get]
func (h *Handler) GetAppConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetAppConfig(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
				Success: false,
				Message: "App config not set",
			})
			return
		}
		serverError(w, "loading app config", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    cfg,
	})
}

// PUT /api/config (admin)
// UpdateAppConfig godoc
// @Summary Upsert the app configuration
// @Description Replaces the single configuration row. Admin only.
// @Tags Config
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/config [put]
func (h *Handler) UpdateAppConfig(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UpiID          string `json:"upiId"`
		UpiDeepLink    string `json:"upiDeepLink"`
		QrImage        string `json:"qrImage"`
		PremiumEnabled bool   `json:"premiumEnabled"`
		GirlName       string `json:"girlName"`
		BoyName        string `json:"boyName"`
		WelcomeMessage string `json:"welcomeMessage"`
		HomeBannerText string `json:"homeBannerText"`
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

	if strings.TrimSpace(input.UpiID) == "" {
		utils.ValidationError(w, map[string]string{"upiId": "upiId is required"})
		return
	}

	cfg := &models.AppConfig{
		UpiID:          input.UpiID,
		UpiDeepLink:    input.UpiDeepLink,
		QrImage:        input.QrImage,
		PremiumEnabled: input.PremiumEnabled,
		GirlName:       input.GirlName,
		BoyName:        input.BoyName,
		WelcomeMessage: input.WelcomeMessage,
		HomeBannerText: input.HomeBannerText,
	}

	saved, err := h.store.SaveAppConfig(r.Context(), cfg)
	if err != nil {
		serverError(w, "saving app config", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Config updated",
		Data:    saved,
	})
}
