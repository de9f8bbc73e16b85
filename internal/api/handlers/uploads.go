package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/singul69/My-chat-app/internal/utils"
)

// POST /api/uploads/presign (admin)
// PresignUpload godoc
// @Summary Presign a companion-image upload
// @Description Returns a presigned PUT URL for the media bucket plus the public URL to store on the canned message. Admin only.
// @Tags Uploads
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/uploads/presign [post]
func (h *Handler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		utils.JSONResponse(w, http.StatusServiceUnavailable, utils.Payload{
			Success: false,
			Message: "Media uploads are not configured",
		})
		return
	}

	var input struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Filename == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	key, err := utils.NewObjectKey("canned", input.Filename)
	if err != nil {
		serverError(w, "building object key", err)
		return
	}

	uploadURL, err := h.media.PresignPut(r.Context(), key, input.ContentType, 15*time.Minute)
	if err != nil {
		serverError(w, "presigning upload", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload URL generated",
		Data: map[string]any{
			"uploadUrl": uploadURL,
			"publicUrl": h.media.PublicURL(key),
			"key":       key,
			"expiresIn": "15m",
		},
	})
}
