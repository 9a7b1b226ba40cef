package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogiq-backend/internal/config"
	"blogiq-backend/internal/logger"
	"blogiq-backend/internal/middleware"
	"blogiq-backend/internal/user/model"
	"blogiq-backend/internal/user/service"
	appErrors "blogiq-backend/pkg/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	m.Run()
}

type fakeStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*model.User)}
}

func (s *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return appErrors.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, appErrors.ErrUserNotFound
}

func (s *fakeStore) GetUserByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return appErrors.ErrUserNotFound
	}
	stored.Username = user.Username
	stored.Email = user.Email
	return nil
}

func (s *fakeStore) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return appErrors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *fakeStore) SetResetToken(_ context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return appErrors.ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	return nil
}

func (s *fakeStore) CompletePasswordReset(_ context.Context, token, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpiry != nil && user.ResetTokenExpiry.After(now) {
			user.PasswordHashed = passwordHash
			user.ResetToken = nil
			user.ResetTokenExpiry = nil
			return nil
		}
	}
	return appErrors.ErrResetTokenInvalid
}

type captureMailer struct {
	mu   sync.Mutex
	link string
}

func (m *captureMailer) SendPasswordReset(_, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.link = resetLink
	return nil
}

func (m *captureMailer) lastToken(t *testing.T) string {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()
	parts := strings.Split(m.link, "/reset/")
	require.Len(t, parts, 2, "unexpected reset link %q", m.link)
	return parts[1]
}

func newTestRouter(t *testing.T) (*gin.Engine, *captureMailer) {
	t.Helper()

	cfg := &config.Config{
		JWT:      config.JWTConfig{Secret: "handler-test-secret", ExpiryHours: 72},
		Password: config.PasswordConfig{BcryptCost: 4},
		Reset:    config.ResetConfig{LinkBaseURL: "https://blog.example.com", TokenTTLHours: 1},
	}

	mail := &captureMailer{}
	svc := service.NewService(newFakeStore(), mail, cfg)
	h := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	h.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	h.RegisterProtectedRoutes(protected)

	return router, mail
}

func doJSON(router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegisterLoginRefetchLogoutScenario(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pw1")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(router, http.MethodGet, "/api/auth/refetch", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
	assert.Contains(t, rec.Body.String(), "alice")

	rec = doJSON(router, http.MethodGet, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// Without the cookie the session is a missing credential.
	rec = doJSON(router, http.MethodGet, "/api/auth/refetch", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Duplicate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice2", "email": "a@x.com", "password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_UnknownEmailVersusWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	})

	rec := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "missing@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPasswordResetScenario(t *testing.T) {
	router, mail := newTestRouter(t)

	doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	})

	rec := doJSON(router, http.MethodPost, "/api/password/reset-password", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := mail.lastToken(t)

	rec = doJSON(router, http.MethodPost, fmt.Sprintf("/api/password/reset/%s", token), gin.H{"password": "pw2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The consumed token cannot be replayed.
	rec = doJSON(router, http.MethodPost, fmt.Sprintf("/api/password/reset/%s", token), gin.H{"password": "pw3"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotPassword_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/password/reset-password", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/password/reset-password", gin.H{"email": "missing@x.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_SelfOnly(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	})
	rec := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "pw1"})
	cookie := sessionCookie(t, rec)

	// A different user's ID is forbidden even with a valid session.
	rec = doJSON(router, http.MethodPut, "/api/users/"+uuid.NewString(), gin.H{"username": "mallory"}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No session at all is unauthorized.
	rec = doJSON(router, http.MethodPut, "/api/users/"+uuid.NewString(), gin.H{"username": "mallory"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
