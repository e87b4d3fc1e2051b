// Package service — application business logic.
//
// Applications live inside the job document, so every mutation here is a
// fetch-modify-save on the job: find the job, edit its Applicants slice,
// write the whole job back. The edit runs inside the repository's
// UpdateFunc so the read snapshot and the write happen under one lock
// acquisition — two concurrent applies each see the other's append
// instead of overwriting it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/match"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
)

// ApplicationService handles applying to jobs and HR's review of the
// resulting applications.
type ApplicationService struct {
	jobs   repository.JobRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(
	jobs repository.JobRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		jobs:   jobs,
		users:  users,
		logger: logger,
	}
}

// Apply records the user's application on the job.
//
// The application is stamped with Pending status, a zero ranking, and a
// match score computed once, right now, from the user's current profile.
// Editing the profile later does not retroactively change the score.
// Applying twice to the same job returns apperror.ErrAlreadyApplied.
func (s *ApplicationService) Apply(ctx context.Context, jobID, userID string) (*model.Application, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var app model.Application
	if _, err := s.jobs.UpdateFunc(ctx, jobID, func(job *model.Job) error {
		for _, existing := range job.Applicants {
			if existing.UserID == userID {
				return apperror.AlreadyApplied(jobID)
			}
		}
		app = model.Application{
			UserID:     userID,
			AppliedAt:  time.Now().UTC(),
			Status:     model.StatusPending,
			Ranking:    model.MinRanking,
			MatchScore: match.Score(user, job),
		}
		job.Applicants = append(job.Applicants, app)
		return nil
	}); err != nil {
		var domainErr *apperror.AppError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("failed to save application",
			slog.String("jobID", jobID),
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving application: %w", err)
	}

	s.logger.Info("application submitted",
		slog.String("jobID", jobID),
		slog.String("userID", userID),
		slog.Float64("matchScore", app.MatchScore),
	)
	return &app, nil
}

// ListApplicantsForJob returns the job's applications enriched with each
// applicant's profile fields, for the HR review screen. Only the HR who
// posted the job may see its applicants.
//
// A userId that no longer resolves to a user record renders with blank
// profile fields — a deleted account must not break the listing.
func (s *ApplicationService) ListApplicantsForJob(ctx context.Context, jobID, hrID string) ([]model.EnrichedApplicant, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.HRID != hrID {
		return nil, apperror.Forbidden("job belongs to another hr")
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading applicant profiles: %w", err)
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	enriched := make([]model.EnrichedApplicant, 0, len(job.Applicants))
	for _, app := range job.Applicants {
		e := model.EnrichedApplicant{Application: app}
		if u, ok := byID[app.UserID]; ok {
			e.Name = u.Name
			e.Email = u.Email
			e.Location = u.Location
			e.Bio = u.Bio
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// ListApplicationsForUser scans the whole catalog for the user's
// applications and enriches each with its job's display fields, newest
// application first.
func (s *ApplicationService) ListApplicationsForUser(ctx context.Context, userID string) ([]model.EnrichedApplication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	jobs, err := s.jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		return nil, fmt.Errorf("scanning jobs for applications: %w", err)
	}

	result := make([]model.EnrichedApplication, 0)
	for _, job := range jobs {
		for _, app := range job.Applicants {
			if app.UserID != userID {
				continue
			}
			result = append(result, model.EnrichedApplication{
				Application:   app,
				JobID:         job.ID,
				Title:         job.Title,
				Company:       job.Company,
				Location:      job.Location,
				WorkplaceType: job.WorkplaceType,
				JobType:       job.JobType,
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AppliedAt.After(result[j].AppliedAt)
	})
	return result, nil
}

// GetApplication returns the user's application on one job, enriched the
// same way as the listing. Returns NotFound when the user never applied.
func (s *ApplicationService) GetApplication(ctx context.Context, jobID, userID string) (*model.EnrichedApplication, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	for _, app := range job.Applicants {
		if app.UserID == userID {
			return &model.EnrichedApplication{
				Application:   app,
				JobID:         job.ID,
				Title:         job.Title,
				Company:       job.Company,
				Location:      job.Location,
				WorkplaceType: job.WorkplaceType,
				JobType:       job.JobType,
			}, nil
		}
	}
	return nil, apperror.NotFound("application", jobID)
}

// UpdateStatus sets the HR decision on one application. Any of the three
// statuses can be set at any time, in any order — Approved can go back to
// Pending, Rejected can become Approved.
func (s *ApplicationService) UpdateStatus(ctx context.Context, jobID, hrID, userID string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be one of %s, %s, %s",
				model.StatusPending, model.StatusApproved, model.StatusRejected))
	}

	return s.mutateApplication(ctx, jobID, hrID, userID, func(app *model.Application) {
		app.Status = status
	})
}

// UpdateRanking sets HR's manual 0–5 rating on one application.
func (s *ApplicationService) UpdateRanking(ctx context.Context, jobID, hrID, userID string, ranking int) (*model.Application, error) {
	if ranking < model.MinRanking || ranking > model.MaxRanking {
		return nil, apperror.ValidationFailed("ranking",
			fmt.Sprintf("ranking must be between %d and %d", model.MinRanking, model.MaxRanking))
	}

	return s.mutateApplication(ctx, jobID, hrID, userID, func(app *model.Application) {
		app.Ranking = ranking
	})
}

// mutateApplication is the shared fetch-modify-save for the two HR review
// edits: find the job, check ownership, find the application, apply the
// edit, write the job back. The whole sequence runs inside UpdateFunc so
// two HRs reviewing at once (or a review racing an apply) cannot clobber
// each other's write.
func (s *ApplicationService) mutateApplication(ctx context.Context, jobID, hrID, userID string, edit func(*model.Application)) (*model.Application, error) {
	var updated model.Application
	if _, err := s.jobs.UpdateFunc(ctx, jobID, func(job *model.Job) error {
		if job.HRID != hrID {
			return apperror.Forbidden("job belongs to another hr")
		}
		for i := range job.Applicants {
			if job.Applicants[i].UserID != userID {
				continue
			}
			edit(&job.Applicants[i])
			updated = job.Applicants[i]
			return nil
		}
		return apperror.NotFound("application", userID)
	}); err != nil {
		var domainErr *apperror.AppError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("saving application update: %w", err)
	}

	s.logger.Info("application updated",
		slog.String("jobID", jobID),
		slog.String("userID", userID),
		slog.String("status", string(updated.Status)),
		slog.Int("ranking", updated.Ranking),
	)
	return &updated, nil
}
