// Package handlers maps the HTTP surface onto the chat and billing services.
// Validation happens here, before any mutation; storage failures surface as
// opaque 500s and are logged server-side.
package handlers

import (
	"log"
	"net/http"

	"github.com/singul69/My-chat-app/internal/billing"
	"github.com/singul69/My-chat-app/internal/chat"
	"github.com/singul69/My-chat-app/internal/media"
	"github.com/singul69/My-chat-app/internal/store"
	"github.com/singul69/My-chat-app/internal/utils"
)

type Handler struct {
	store   store.Store
	chat    *chat.Service
	billing *billing.Service
	media   *media.R2Client // nil when R2 is not configured

	jwtSecret     string
	secureCookies bool
}

func New(st store.Store, chatSvc *chat.Service, billingSvc *billing.Service, mediaClient *media.R2Client, jwtSecret string, secureCookies bool) *Handler {
	return &Handler{
		store:         st,
		chat:          chatSvc,
		billing:       billingSvc,
		media:         mediaClient,
		jwtSecret:     jwtSecret,
		secureCookies: secureCookies,
	}
}

// serverError logs the cause and answers with an opaque 500.
func serverError(w http.ResponseWriter, action string, err error) {
	log.Printf("%s: %v", action, err)
	utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
		Success: false,
		Message: "Server error",
	})
}
