package handler

// ProfileHandler serves the logged-in account's own profile plus the HR
// view of an applicant's profile. The identity always comes from the JWT
// in the request context — there is no "get profile by arbitrary ID"
// except the HR-only applicant lookup.

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/auth"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/service"
)

// ProfileHandler translates HTTP to the profile side of AuthService.
type ProfileHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.AuthService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

type hrProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Company string `json:"company" validate:"omitempty,max=200"`
}

type userProfileRequest struct {
	Name           string                 `json:"name" validate:"omitempty,max=100"`
	Location       string                 `json:"location"`
	Phone          string                 `json:"phone"`
	Bio            string                 `json:"bio"`
	Skills         []string               `json:"skills"`
	Languages      []model.Language       `json:"languages"`
	Experience     []model.WorkExperience `json:"experience"`
	Projects       []model.Project        `json:"projects"`
	Certifications []model.Certification  `json:"certifications"`
}

// HandleHRProfile returns the logged-in HR's account.
//
// HTTP: GET /api/hr/profile
func (h *ProfileHandler) HandleHRProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	hr, err := h.svc.GetHR(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hr)
}

// HandleHRProfileUpdate edits the logged-in HR's name/company.
//
// HTTP: PUT /api/hr/profile
func (h *ProfileHandler) HandleHRProfileUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	var req hrProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	hr, err := h.svc.UpdateHRProfile(r.Context(), id, service.HRProfileUpdate{
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hr)
}

// HandleUserProfile returns the logged-in job-seeker's account.
//
// HTTP: GET /api/user/profile
func (h *ProfileHandler) HandleUserProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUserProfileUpdate edits the logged-in job-seeker's profile.
// Omitted sections stay as they are; sending an empty array clears one.
//
// HTTP: PUT /api/user/profile
func (h *ProfileHandler) HandleUserProfileUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	var req userProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.UpdateUserProfile(r.Context(), id, service.UserProfileUpdate{
		Name:           req.Name,
		Location:       req.Location,
		Phone:          req.Phone,
		Bio:            req.Bio,
		Skills:         req.Skills,
		Languages:      req.Languages,
		Experience:     req.Experience,
		Projects:       req.Projects,
		Certifications: req.Certifications,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleApplicantProfile returns a job-seeker's full profile for HR
// review screens.
//
// HTTP: GET /api/hr/user-profile/{id}
func (h *ProfileHandler) HandleApplicantProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// identityID pulls the account ID out of the JWT middleware's context.
func identityID(r *http.Request) (string, bool) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return "", false
	}
	return ident.ID, true
}
