package handlers

import (
	"net/http"

	"github.com/singul69/My-chat-app/internal/utils"
)

// GET /api/users (admin)
// ListUsers godoc
// @Summary List all users
// @Description Returns every account, newest first, password hashes excluded. Admin only.
// @Tags Users
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		serverError(w, "listing users", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    users,
	})
}
