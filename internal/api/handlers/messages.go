package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/singul69/My-chat-app/internal/api/middleware"
	"github.com/singul69/My-chat-app/internal/chat"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/utils"
)

// GET /api/messages
// ListCannedMessages godoc
// @Summary List the caller's eligible canned messages
// @Description Returns every reply template the caller is entitled to, newest first. Premium callers see the full pool.
// @Tags Messages
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/messages [get]
func (h *Handler) ListCannedMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		unauthorizedResponse(w)
		return
	}

	messages, err := h.chat.EligibleMessages(r.Context(), user.IsPremium)
	if err != nil {
		serverError(w, "listing canned messages", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    messages,
	})
}

// POST /api/messages (admin)
// CreateCannedMessage godoc
// @Summary Create a canned message
// @Description Adds a reply template with paired audience texts and optional image URLs. Admin only.
// @Tags Messages
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/messages [post]
func (h *Handler) CreateCannedMessage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ForBoysMessage   string `json:"for_boys_message"`
		ForGirlsMessage  string `json:"for_girls_message"`
		ForBoysImageURL  string `json:"for_boys_image_url"`
		ForGirlsImageURL string `json:"for_girls_image_url"`
		IsPremium        bool   `json:"isPremium"`
		Category         string `json:"category"`
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

	msg := &models.CannedMessage{
		ForBoysMessage:   input.ForBoysMessage,
		ForGirlsMessage:  input.ForGirlsMessage,
		ForBoysImageURL:  input.ForBoysImageURL,
		ForGirlsImageURL: input.ForGirlsImageURL,
		IsPremium:        input.IsPremium,
		Category:         input.Category,
	}

	if err := h.chat.CreateCannedMessage(r.Context(), msg); err != nil {
		switch {
		case errors.Is(err, chat.ErrMissingCategory):
			utils.ValidationError(w, map[string]string{"category": err.Error()})
		case errors.Is(err, chat.ErrMissingText):
			utils.ValidationError(w, map[string]string{"for_boys_message": err.Error()})
		default:
			serverError(w, "creating canned message", err)
		}
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Message created",
		Data:    msg,
	})
}

// GET /api/user-messages
// ChatHistory godoc
// @Summary Get the caller's chat history
// @Description Returns the caller's turns, human and synthetic, oldest first.
// @Tags Chat
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/user-messages [get]
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		unauthorizedResponse(w)
		return
	}

	messages, err := h.chat.History(r.Context(), user.ID)
	if err != nil {
		serverError(w, "loading chat history", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    messages,
	})
}

// POST /api/user-messages
// SendMessage godoc
// @Summary Submit a chat turn
// @Description Persists the human turn and, when the reply engine hits, a synthetic companion reply the client discovers by polling.
// @Tags Chat
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/user-messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		unauthorizedResponse(w)
		return
	}

	// Clients send isUserMessage:true on every turn; the server sets the
	// flag itself, so the value is accepted and ignored.
	var input struct {
		Message       string `json:"message"`
		ImageURL      string `json:"imageUrl"`
		IsUserMessage bool   `json:"isUserMessage"`
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

	turn, err := h.chat.SubmitUserMessage(r.Context(), user, input.Message, input.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			utils.ValidationError(w, map[string]string{"message": err.Error()})
		case errors.Is(err, chat.ErrUnknownGender):
			utils.ValidationError(w, map[string]string{"gender": err.Error()})
		default:
			serverError(w, "submitting chat turn", err)
		}
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Message sent",
		Data:    turn,
	})
}
