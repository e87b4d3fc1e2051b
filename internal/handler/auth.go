package handler

// AuthHandler owns the register/login/logout endpoints for both account
// types. The JWT travels in an HttpOnly cookie, never in the JSON body:
//
//	POST /api/hr/register    → 201, sets cookie
//	POST /api/hr/login       → 200, sets cookie
//	POST /api/hr/logout      → 204, clears cookie
//	POST /api/user/register  → 201, sets cookie
//	POST /api/user/login     → 200, sets cookie
//	POST /api/user/logout    → 204, clears cookie
//
// WHY AN HttpOnly COOKIE?
// JavaScript cannot read an HttpOnly cookie, so an XSS bug cannot steal
// the token. The browser attaches it to every request automatically; the
// response body only carries the account record.

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hirepro/internal/auth"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/service"
)

// AuthHandler translates HTTP to AuthService calls.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type hrRegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Company  string `json:"company" validate:"required,max=200"`
}

type userRegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleHRRegister creates an employer account and logs it in.
//
// HTTP: POST /api/hr/register
func (h *AuthHandler) HandleHRRegister(w http.ResponseWriter, r *http.Request) {
	var req hrRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.RegisterHR(r.Context(), req.Name, req.Email, req.Password, req.Company)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, res.HR)
}

// HandleHRLogin authenticates an employer.
//
// HTTP: POST /api/hr/login
func (h *AuthHandler) HandleHRLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.LoginHR(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, res.HR)
}

// HandleHRLogout clears the cookie and the persisted session pointer.
//
// HTTP: POST /api/hr/logout
func (h *AuthHandler) HandleHRLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, model.RoleHR)
}

// HandleUserRegister creates a job-seeker account and logs it in.
//
// HTTP: POST /api/user/register
func (h *AuthHandler) HandleUserRegister(w http.ResponseWriter, r *http.Request) {
	var req userRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, res.User)
}

// HandleUserLogin authenticates a job-seeker. An unknown email is a 401,
// never a silently created account.
//
// HTTP: POST /api/user/login
func (h *AuthHandler) HandleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, res.User)
}

// HandleUserLogout clears the cookie and the persisted session pointer.
//
// HTTP: POST /api/user/logout
func (h *AuthHandler) HandleUserLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, model.RoleUser)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request, role model.Role) {
	if err := h.svc.Logout(r.Context(), role); err != nil {
		writeError(w, err)
		return
	}
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
