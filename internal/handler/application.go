package handler

// ApplicationHandler covers applying and HR's review of applications:
//
//	Job seeker
//	  POST /api/user/jobs/{id}/apply       → apply to a job
//	  GET  /api/user/applications          → all own applications
//	  GET  /api/user/applications/{jobID}  → own application on one job
//
//	HR
//	  GET   /api/hr/jobs/{id}/applicants                    → review list
//	  PATCH /api/hr/jobs/{id}/applicants/{userID}/status    → set decision
//	  PATCH /api/hr/jobs/{id}/applicants/{userID}/ranking   → set 0–5 rating

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/service"
)

// ApplicationHandler translates HTTP to ApplicationService calls.
type ApplicationHandler struct {
	svc    *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, logger: logger}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type rankingRequest struct {
	Ranking int `json:"ranking" validate:"min=0,max=5"`
}

// HandleApply records the logged-in user's application on a job.
// Applying twice is a 409.
//
// HTTP: POST /api/user/jobs/{id}/apply
func (h *ApplicationHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	app, err := h.svc.Apply(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// HandleListOwn returns all of the logged-in user's applications, each
// enriched with its job's display fields, newest first.
//
// HTTP: GET /api/user/applications
func (h *ApplicationHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	apps, err := h.svc.ListApplicationsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleGetOwn returns the logged-in user's application on one job.
//
// HTTP: GET /api/user/applications/{jobID}
func (h *ApplicationHandler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	app, err := h.svc.GetApplication(r.Context(), r.PathValue("jobID"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// HandleListApplicants returns a posting's applications with each
// applicant's profile fields, for the review screen.
//
// HTTP: GET /api/hr/jobs/{id}/applicants
func (h *ApplicationHandler) HandleListApplicants(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	apps, err := h.svc.ListApplicantsForJob(r.Context(), r.PathValue("id"), hrID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleUpdateStatus sets the decision on one application. Any of the
// three statuses can be set at any time.
//
// HTTP: PATCH /api/hr/jobs/{id}/applicants/{userID}/status
func (h *ApplicationHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(),
		r.PathValue("id"), hrID, r.PathValue("userID"),
		model.ApplicationStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// HandleUpdateRanking sets HR's manual rating on one application.
//
// HTTP: PATCH /api/hr/jobs/{id}/applicants/{userID}/ranking
func (h *ApplicationHandler) HandleUpdateRanking(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	var req rankingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.UpdateRanking(r.Context(),
		r.PathValue("id"), hrID, r.PathValue("userID"), req.Ranking)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
