package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/singul69/My-chat-app/internal/api"
	"github.com/singul69/My-chat-app/internal/api/handlers"
	"github.com/singul69/My-chat-app/internal/billing"
	"github.com/singul69/My-chat-app/internal/chat"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) (http.Handler, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	h := handlers.New(st, chat.NewService(st, nil), billing.NewService(st), nil, testJWTSecret, false)
	return api.SetupRouter(h, st, cors.Options{}, testJWTSecret), st
}

// payload mirrors the response envelope every endpoint answers with.
type payload struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, sessionCookie *http.Cookie, body any) (*httptest.ResponseRecorder, payload) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionCookie != nil {
		req.AddCookie(sessionCookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var p payload
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	}
	return rec, p
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerUser(t *testing.T, router http.Handler, username string, gender models.Gender) *http.Cookie {
	t.Helper()
	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", nil, map[string]any{
		"username": username,
		"password": "secret123",
		"fullName": "Test User",
		"email":    fmt.Sprintf("%s@example.com", username),
		"gender":   gender,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookieFrom(t, rec)
}

// loginAdmin seeds an admin user straight into the store and logs in
// through the API so the returned cookie is a real session.
func loginAdmin(t *testing.T, router http.Handler, st *store.Memory) *http.Cookie {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.CreateUser(context.Background(), &models.User{
		Username:  "admin",
		Password:  string(hash),
		FullName:  "Admin",
		Email:     "admin@example.com",
		Gender:    models.GenderFemale,
		IsPremium: true,
		IsAdmin:   true,
	}))

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/login", nil, map[string]any{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookieFrom(t, rec)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := registerUser(t, router, "riya", models.GenderFemale)

	rec, p := doJSON(t, router, http.MethodGet, "/api/me", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(p.Data, &me))
	assert.Equal(t, "riya", me.Username)
	assert.False(t, me.IsPremium)

	// The password hash must never leak.
	assert.NotContains(t, rec.Body.String(), "password")

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", nil, map[string]any{
		"username": "riya",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", nil, map[string]any{
		"username": "riya",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, p := doJSON(t, router, http.MethodPost, "/api/auth/register", nil, map[string]any{
		"username": "",
		"password": "abc",
		"fullName": "",
		"email":    "not-an-email",
		"gender":   "other",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, p.Success)
	assert.Contains(t, p.Errors, "username")
	assert.Contains(t, p.Errors, "password")
	assert.Contains(t, p.Errors, "email")
	assert.Contains(t, p.Errors, "gender")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "riya", models.GenderFemale)

	rec, p := doJSON(t, router, http.MethodPost, "/api/auth/register", nil, map[string]any{
		"username": "riya",
		"password": "secret123",
		"fullName": "Someone Else",
		"email":    "else@example.com",
		"gender":   "female",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is already taken", p.Message)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/me", "/api/messages", "/api/user-messages"} {
		rec, _ := doJSON(t, router, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminRoutesForbiddenForRegularUsers(t *testing.T) {
	router, st := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	rec, p := doJSON(t, router, http.MethodPost, "/api/payments", cookie, map[string]any{
		"amount":        299,
		"transactionId": "TXN123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var payment models.Payment
	require.NoError(t, json.Unmarshal(p.Data, &payment))

	// A regular user cannot verify their own payment.
	rec, _ = doJSON(t, router, http.MethodPut, "/api/payments/"+payment.ID.String()+"/verify", cookie, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	got, err := st.GetPayment(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.False(t, got.Verified, "forbidden request must not mutate the payment")

	rec, _ = doJSON(t, router, http.MethodGet, "/api/users", cookie, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifyPaymentUpgradesUser(t *testing.T) {
	router, st := newTestRouter(t)
	userCookie := registerUser(t, router, "rahul", models.GenderMale)
	adminCookie := loginAdmin(t, router, st)

	rec, p := doJSON(t, router, http.MethodPost, "/api/payments", userCookie, map[string]any{
		"amount":        299,
		"transactionId": "TXN123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var payment models.Payment
	require.NoError(t, json.Unmarshal(p.Data, &payment))

	rec, p = doJSON(t, router, http.MethodPut, "/api/payments/"+payment.ID.String()+"/verify", adminCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var verified models.Payment
	require.NoError(t, json.Unmarshal(p.Data, &verified))
	assert.True(t, verified.Verified)

	// The owner's next authenticated request sees the upgrade.
	rec, p = doJSON(t, router, http.MethodGet, "/api/me", userCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(p.Data, &me))
	assert.True(t, me.IsPremium)
}

func TestVerifyPaymentBadID(t *testing.T) {
	router, st := newTestRouter(t)
	adminCookie := loginAdmin(t, router, st)

	rec, _ := doJSON(t, router, http.MethodPut, "/api/payments/not-a-uuid/verify", adminCookie, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePaymentRejectsBadAmount(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	rec, p := doJSON(t, router, http.MethodPost, "/api/payments", cookie, map[string]any{
		"amount":        0,
		"transactionId": "TXN123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, p.Errors, "amount")
}

func TestSendMessageCreatesReply(t *testing.T) {
	router, st := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	require.NoError(t, st.CreateCannedMessage(context.Background(), &models.CannedMessage{
		ForBoysMessage:  "Hey you! I was just thinking about you",
		ForGirlsMessage: "Heyy! Missed me?",
		Category:        "greeting",
	}))

	rec, _ := doJSON(t, router, http.MethodPost, "/api/user-messages", cookie, map[string]any{
		"message": "hi there",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, p := doJSON(t, router, http.MethodGet, "/api/user-messages", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.UserMessage
	require.NoError(t, json.Unmarshal(p.Data, &history))
	require.Len(t, history, 2)
	assert.True(t, history[0].IsUserMessage)
	assert.Equal(t, "hi there", history[0].Message)
	assert.False(t, history[1].IsUserMessage)
	assert.Equal(t, "Hey you! I was just thinking about you", history[1].Message)
}

func TestSendMessageAcceptsClientSentFlag(t *testing.T) {
	router, st := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	require.NoError(t, st.CreateCannedMessage(context.Background(), &models.CannedMessage{
		ForBoysMessage:  "Hey you! I was just thinking about you",
		ForGirlsMessage: "Heyy! Missed me?",
		Category:        "greeting",
	}))

	// The client marks its own turns; the server accepts the flag but
	// decides it per row, so even a lying false is stored as a human turn.
	rec, _ := doJSON(t, router, http.MethodPost, "/api/user-messages", cookie, map[string]any{
		"message":       "hi there",
		"isUserMessage": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = doJSON(t, router, http.MethodPost, "/api/user-messages", cookie, map[string]any{
		"message":       "still me",
		"isUserMessage": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, p := doJSON(t, router, http.MethodGet, "/api/user-messages", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.UserMessage
	require.NoError(t, json.Unmarshal(p.Data, &history))
	require.Len(t, history, 4)
	assert.True(t, history[0].IsUserMessage)
	assert.True(t, history[2].IsUserMessage, "client-sent false must not demote a human turn")
}

func TestSendMessageUnknownGenderIsValidationError(t *testing.T) {
	router, st := newTestRouter(t)

	// A row predating the gender enum can only enter through the store.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.CreateUser(context.Background(), &models.User{
		Username: "legacy",
		Password: string(hash),
		FullName: "Legacy Row",
		Email:    "legacy@example.com",
		Gender:   "unspecified",
	}))

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/login", nil, map[string]any{
		"username": "legacy",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookieFrom(t, rec)

	rec, p := doJSON(t, router, http.MethodPost, "/api/user-messages", cookie, map[string]any{
		"message": "hi there",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, p.Errors, "gender")
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	rec, p := doJSON(t, router, http.MethodPost, "/api/user-messages", cookie, map[string]any{
		"message": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, p.Errors, "message")
}

func TestListMessagesFiltersPremiumForFreeUsers(t *testing.T) {
	router, st := newTestRouter(t)
	cookie := registerUser(t, router, "rahul", models.GenderMale)

	ctx := context.Background()
	require.NoError(t, st.CreateCannedMessage(ctx, &models.CannedMessage{
		ForBoysMessage: "free reply", Category: "greeting",
	}))
	require.NoError(t, st.CreateCannedMessage(ctx, &models.CannedMessage{
		ForBoysMessage: "premium reply", Category: "romantic", IsPremium: true,
	}))

	rec, p := doJSON(t, router, http.MethodGet, "/api/messages", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []models.CannedMessage
	require.NoError(t, json.Unmarshal(p.Data, &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "free reply", msgs[0].ForBoysMessage)
}

func TestCreateCannedMessageAdminOnly(t *testing.T) {
	router, st := newTestRouter(t)
	userCookie := registerUser(t, router, "rahul", models.GenderMale)
	adminCookie := loginAdmin(t, router, st)

	body := map[string]any{
		"for_boys_message":  "You looked cute today",
		"for_girls_message": "You looked lovely today",
		"category":          "romantic",
		"isPremium":         true,
	}

	rec, _ := doJSON(t, router, http.MethodPost, "/api/messages", userCookie, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/messages", adminCookie, body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, p := doJSON(t, router, http.MethodPost, "/api/messages", adminCookie, map[string]any{
		"for_boys_message": "orphan text",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, p.Errors, "category")
}

func TestAppConfigRoundTrip(t *testing.T) {
	router, st := newTestRouter(t)
	userCookie := registerUser(t, router, "rahul", models.GenderMale)
	adminCookie := loginAdmin(t, router, st)

	// Nothing configured yet.
	rec, _ := doJSON(t, router, http.MethodGet, "/api/config", userCookie, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPut, "/api/config", adminCookie, map[string]any{
		"upiId":          "lovechat@ybl",
		"premiumEnabled": true,
		"girlName":       "Ananya",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, p := doJSON(t, router, http.MethodGet, "/api/config", userCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg models.AppConfig
	require.NoError(t, json.Unmarshal(p.Data, &cfg))
	assert.Equal(t, "lovechat@ybl", cfg.UpiID)
	assert.True(t, cfg.PremiumEnabled)
}

func TestPresignUnavailableWithoutMediaClient(t *testing.T) {
	router, st := newTestRouter(t)
	adminCookie := loginAdmin(t, router, st)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/uploads/presign", adminCookie, map[string]any{
		"filename":    "pic.jpg",
		"contentType": "image/jpeg",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := registerUser(t, router, "riya", models.GenderFemale)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/logout", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}
