package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/singul69/My-chat-app/docs"
	"github.com/singul69/My-chat-app/internal/api/handlers"
	"github.com/singul69/My-chat-app/internal/api/middleware"
	"github.com/singul69/My-chat-app/internal/store"
)

// SetupRouter wires the HTTP surface. Everything under /api except the
// register/login pair goes through session auth; admin operations are
// additionally gated per route by RequireAdmin.
func SetupRouter(h *handlers.Handler, st store.Store, corsOptions cors.Options, jwtSecret string) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(corsOptions)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mainMux.Handle("GET /metrics", promhttp.Handler())
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /api/auth/register", h.Register)
	mainMux.HandleFunc("POST /api/auth/login", h.Login)

	// ---------- PROTECTED ROUTES ----------
	protected := http.NewServeMux()

	protected.HandleFunc("POST /auth/logout", h.Logout)
	protected.HandleFunc("GET /me", h.Me)

	protected.HandleFunc("GET /messages", h.ListCannedMessages)
	protected.HandleFunc("GET /user-messages", h.ChatHistory)
	protected.HandleFunc("POST /user-messages", h.SendMessage)

	protected.HandleFunc("POST /payments", h.CreatePayment)
	protected.HandleFunc("GET /config", h.GetAppConfig)

	// ---------- ADMIN ROUTES ----------
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(fn)
	}
	protected.Handle("POST /messages", adminOnly(h.CreateCannedMessage))
	protected.Handle("GET /payments", adminOnly(h.ListPayments))
	protected.Handle("PUT /payments/{id}/verify", adminOnly(h.VerifyPayment))
	protected.Handle("GET /users", adminOnly(h.ListUsers))
	protected.Handle("PUT /config", adminOnly(h.UpdateAppConfig))
	protected.Handle("POST /uploads/presign", adminOnly(h.PresignUpload))

	mainMux.Handle("/api/",
		http.StripPrefix(
			"/api",
			middleware.Auth(st, jwtSecret)(protected),
		),
	)

	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
