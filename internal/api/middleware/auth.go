package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
	"github.com/singul69/My-chat-app/internal/utils"
)

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the authenticated user placed in the context by Auth.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser is used by handler tests to fake an authenticated request.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}

// Auth resolves the session cookie to a freshly loaded user record. Loading
// per request means entitlement changes (a verified payment) are visible on
// the very next call, without reissuing the session.
func Auth(st store.Store, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie("token")
			if err != nil {
				unauthorized(w)
				return
			}

			token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w)
				return
			}

			userIDStr, ok := claims["userId"].(string)
			if !ok || userIDStr == "" {
				unauthorized(w)
				return
			}
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := st.GetUser(r.Context(), userID)
			if err != nil {
				// Token references a user that no longer resolves.
				unauthorized(w)
				return
			}

			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
