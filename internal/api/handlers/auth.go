package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/singul69/My-chat-app/internal/api/middleware"
	"github.com/singul69/My-chat-app/internal/metrics"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
	"github.com/singul69/My-chat-app/internal/utils"
)

const sessionDuration = 7 * 24 * time.Hour

// JWT Claims struct
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, user *models.User) error {
	expiration := time.Now().Add(sessionDuration)
	claims := &Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}

	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: sameSite,
	})
	return nil
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string        `json:"username"`
		Password string        `json:"password"`
		FullName string        `json:"fullName"`
		Email    string        `json:"email"`
		Gender   models.Gender `json:"gender"`
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

	fields := map[string]string{}
	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "username is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(input.FullName) == "" {
		fields["fullName"] = "full name is required"
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if !input.Gender.Valid() {
		fields["gender"] = `gender must be "male" or "female"`
	}
	if len(fields) > 0 {
		utils.ValidationError(w, fields)
		return
	}

	if _, err := h.store.GetUserByUsername(r.Context(), input.Username); err == nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Username is already taken",
		})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(w, "register: username lookup", err)
		return
	}

	if _, err := h.store.GetUserByEmail(r.Context(), input.Email); err == nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "User already exists with this email",
		})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(w, "register: email lookup", err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, "register: hashing password", err)
		return
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		FullName: input.FullName,
		Email:    input.Email,
		Gender:   input.Gender,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Username or email is already taken",
			})
			return
		}
		serverError(w, "register: creating user", err)
		return
	}
	metrics.Registry().Registrations.Inc()

	// Auto-login after registration.
	if err := h.setSessionCookie(w, user); err != nil {
		serverError(w, "register: issuing session", err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Username == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), input.Username)
	switch {
	case err == nil:
		// user found
	case errors.Is(err, store.ErrNotFound):
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	default:
		serverError(w, "login: user lookup", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		serverError(w, "login: issuing session", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data:    user,
	})
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// Delete the token cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		unauthorizedResponse(w)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    user,
	})
}

func unauthorizedResponse(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}
