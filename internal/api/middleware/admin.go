package middleware

import (
	"net/http"

	"github.com/singul69/My-chat-app/internal/utils"
)

// RequireAdmin gates an already-authenticated route on the admin capability.
// It is applied at the boundary of every admin operation rather than checked
// ad hoc inside handlers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !user.IsAdmin {
			utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
				Success: false,
				Message: "Forbidden",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
