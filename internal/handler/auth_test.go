package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hirepro/internal/auth"
	"github.com/sakif/hirepro/internal/handler"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository/local"
	"github.com/sakif/hirepro/internal/service"
	"github.com/sakif/hirepro/internal/store"
)

// Handler tests run the full stack below the router: real services over
// the in-memory store. Only the HTTP layer is exercised directly.

type testEnv struct {
	db     *local.DB
	auth   *service.AuthService
	jobs   *service.JobService
	apps   *service.ApplicationService
	tokens *auth.TokenService
	logger *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	db := local.New(store.NewMemory())
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(4)
	return &testEnv{
		db:     db,
		auth:   service.NewAuthService(db, db, db, tokens, passwords, logger),
		jobs:   service.NewJobService(db, db, db, logger),
		apps:   service.NewApplicationService(db, db, logger),
		tokens: tokens,
		logger: logger,
	}
}

// asIdentity stamps the request context the way the auth middleware would.
func asIdentity(req *http.Request, id string, role model.Role) *http.Request {
	ctx := auth.WithIdentity(req.Context(), auth.Identity{ID: id, Role: role})
	return req.WithContext(ctx)
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// registerHR creates an HR account through the service and returns it.
func registerHR(t *testing.T, env *testEnv) *model.HR {
	t.Helper()
	res, err := env.auth.RegisterHR(context.Background(), "Dana", "dana@acme.com", "hunter2secure", "Acme")
	require.NoError(t, err)
	return res.HR
}

func registerUser(t *testing.T, env *testEnv, email string, skills []string) *model.User {
	t.Helper()
	res, err := env.auth.RegisterUser(context.Background(), "Alice", email, "alicepassword")
	require.NoError(t, err)
	if skills != nil {
		user, err := env.auth.UpdateUserProfile(context.Background(), res.User.ID,
			service.UserProfileUpdate{Skills: skills})
		require.NoError(t, err)
		return user
	}
	return res.User
}

func TestAuthHandler_HRRegister(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewAuthHandler(env.auth, env.logger)

	t.Run("success sets cookie", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/hr/register", map[string]any{
			"name":     "Dana",
			"email":    "dana@acme.com",
			"password": "hunter2secure",
			"company":  "Acme",
		})
		rr := httptest.NewRecorder()
		h.HandleHRRegister(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var hr model.HR
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&hr))
		assert.NotEmpty(t, hr.ID)
		assert.Equal(t, "Acme", hr.Company)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		// The cookie's token really authenticates as this HR.
		ident, err := env.tokens.Validate(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, hr.ID, ident.ID)
		assert.Equal(t, model.RoleHR, ident.Role)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/hr/register", map[string]any{
			"name": "Dana",
		})
		rr := httptest.NewRecorder()
		h.HandleHRRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var errResp handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "validation_error", errResp.Error)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/hr/register", bytes.NewBufferString(`{"name":`))
		rr := httptest.NewRecorder()
		h.HandleHRRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/hr/register", map[string]any{
			"name":     "Other",
			"email":    "dana@acme.com",
			"password": "hunter2secure",
			"company":  "Other Co",
		})
		rr := httptest.NewRecorder()
		h.HandleHRRegister(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestAuthHandler_UserLogin(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewAuthHandler(env.auth, env.logger)
	registerUser(t, env, "alice@example.com", nil)

	t.Run("success", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "alice@example.com",
			"password": "alicepassword",
		})
		rr := httptest.NewRecorder()
		h.HandleUserLogin(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, rr.Result().Cookies(), 1)

		// The password hash must never appear in the response body.
		var body map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.NotContains(t, body, "passwordHash")
		assert.NotContains(t, body, "password")
	})

	t.Run("unknown email is 401, not a new account", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "ghost@example.com",
			"password": "whatever123",
		})
		rr := httptest.NewRecorder()
		h.HandleUserLogin(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var errResp handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "unauthorized", errResp.Error)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/user/login", map[string]any{
			"email":    "alice@example.com",
			"password": "wrongpassword",
		})
		rr := httptest.NewRecorder()
		h.HandleUserLogin(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewAuthHandler(env.auth, env.logger)
	user := registerUser(t, env, "alice@example.com", nil)

	req := jsonRequest(t, http.MethodPost, "/api/user/logout", nil)
	req = asIdentity(req, user.ID, model.RoleUser)
	rr := httptest.NewRecorder()
	h.HandleUserLogout(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge, "logout must expire the cookie")

	sess, err := env.db.Get(context.Background(), model.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, sess, "logout must clear the stored session")
}
