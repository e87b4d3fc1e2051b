package handler

// JobHandler covers both sides of the catalog:
//
//	HR (posting side)
//	  POST   /api/hr/jobs        → post a job
//	  GET    /api/hr/jobs        → list own postings
//	  GET    /api/hr/jobs/{id}   → one posting
//	  DELETE /api/hr/jobs/{id}   → remove a posting (owner only)
//
//	Job seeker (browsing side)
//	  GET /api/user/jobs                → catalog, with ?q= &workplace= &type=
//	  GET /api/user/jobs?recommended=1  → catalog ranked against the profile
//	  GET /api/user/jobs/{id}           → one job

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
	"github.com/sakif/hirepro/internal/service"
)

// JobHandler translates HTTP to JobService calls.
type JobHandler struct {
	svc    *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(svc *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{svc: svc, logger: logger}
}

type jobRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	WorkplaceType string `json:"workplaceType" validate:"required"`
	Location      string `json:"location"`
	JobType       string `json:"jobType" validate:"required"`
	Description   string `json:"description"`
	Salary        string `json:"salary"`
	Department    string `json:"department"`
	Deadline      string `json:"deadline"`
	EasyApply     bool   `json:"easyApply"`
}

// HandleCreate posts a new job under the logged-in HR's company.
//
// HTTP: POST /api/hr/jobs
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	job, err := h.svc.Create(r.Context(), hrID, service.JobInput{
		Title:         req.Title,
		WorkplaceType: model.WorkplaceType(req.WorkplaceType),
		Location:      req.Location,
		JobType:       model.JobType(req.JobType),
		Description:   req.Description,
		Salary:        req.Salary,
		Department:    req.Department,
		Deadline:      req.Deadline,
		EasyApply:     req.EasyApply,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// HandleListOwn lists the logged-in HR's postings, newest first.
//
// HTTP: GET /api/hr/jobs
func (h *JobHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	jobs, err := h.svc.ListByHR(r.Context(), hrID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// HandleGet returns one job by ID. Shared by both route groups.
//
// HTTP: GET /api/hr/jobs/{id}, GET /api/user/jobs/{id}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// HandleDelete removes a posting. Only its owner may; the service turns
// anyone else into a 403.
//
// HTTP: DELETE /api/hr/jobs/{id}
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	hrID, ok := identityID(r)
	if !ok {
		writeError(w, apperror.Unauthorized("not logged in"))
		return
	}
	if err := h.svc.Delete(r.Context(), r.PathValue("id"), hrID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBrowse serves the job-seeker catalog.
//
// HTTP: GET /api/user/jobs
//
// QUERY PARAMETERS:
//   - q          substring match on title/company/location
//   - workplace  On-site | Remote | Hybrid
//   - type       Full-time | Part-time | Contract | Internship
//   - recommended=1  ignore the filters and rank the whole catalog
//     against the logged-in profile, best match first
func (h *JobHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("recommended") == "1" {
		userID, ok := identityID(r)
		if !ok {
			writeError(w, apperror.Unauthorized("not logged in"))
			return
		}
		ranked, err := h.svc.Recommend(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ranked)
		return
	}

	jobs, err := h.svc.List(r.Context(), repository.JobFilter{
		Query:     q.Get("q"),
		Workplace: model.WorkplaceType(q.Get("workplace")),
		JobType:   model.JobType(q.Get("type")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
