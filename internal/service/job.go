// Package service — job catalog business logic.
//
// THE THREE-LAYER ARCHITECTURE:
// Handlers parse HTTP, services enforce the rules, repositories persist.
// JobService never sees an *http.Request and never touches the store
// directly — it talks to repository interfaces, so tests can feed it an
// in-memory repository and call methods as plain Go functions.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/match"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
)

// Validation constants for job postings.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 20000
)

// JobService handles business logic for job postings.
type JobService struct {
	jobs   repository.JobRepository
	hrs    repository.HRRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// NewJobService creates a JobService. The HR repository is needed to stamp
// the poster's company onto new jobs; the user repository backs the
// recommendation flow.
func NewJobService(
	jobs repository.JobRepository,
	hrs repository.HRRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *JobService {
	return &JobService{
		jobs:   jobs,
		hrs:    hrs,
		users:  users,
		logger: logger,
	}
}

// JobInput carries the poster-supplied fields of a new job. Company is
// deliberately absent — it is always taken from the posting HR's account,
// so an HR cannot post under someone else's banner.
type JobInput struct {
	Title         string
	WorkplaceType model.WorkplaceType
	Location      string
	JobType       model.JobType
	Description   string
	Salary        string
	Department    string
	Deadline      string
	EasyApply     bool
}

// Create validates and posts a new job on behalf of the given HR.
func (s *JobService) Create(ctx context.Context, hrID string, in JobInput) (*model.Job, error) {
	hr, err := s.hrs.GetHRByID(ctx, hrID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "job title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("job title must be %d characters or less", MaxTitleLength))
	}
	if len(in.Description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}
	if !in.WorkplaceType.Valid() {
		return nil, apperror.ValidationFailed("workplaceType",
			fmt.Sprintf("workplace type must be one of %s, %s, %s",
				model.WorkplaceOnSite, model.WorkplaceRemote, model.WorkplaceHybrid))
	}
	if !in.JobType.Valid() {
		return nil, apperror.ValidationFailed("jobType",
			fmt.Sprintf("job type must be one of %s, %s, %s, %s",
				model.JobFullTime, model.JobPartTime, model.JobContract, model.JobInternship))
	}

	job := &model.Job{
		Title:         title,
		Company:       hr.Company,
		WorkplaceType: in.WorkplaceType,
		Location:      strings.TrimSpace(in.Location),
		JobType:       in.JobType,
		Description:   strings.TrimSpace(in.Description),
		Salary:        strings.TrimSpace(in.Salary),
		Department:    strings.TrimSpace(in.Department),
		Deadline:      strings.TrimSpace(in.Deadline),
		EasyApply:     in.EasyApply,
		HRID:          hr.ID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error("failed to create job",
			slog.String("hrID", hrID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.logger.Info("job posted",
		slog.String("jobID", job.ID),
		slog.String("title", job.Title),
		slog.String("company", job.Company),
	)
	return job, nil
}

// Get returns a single job by ID.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "job ID is required")
	}
	return s.jobs.GetByID(ctx, id)
}

// List returns the catalog filtered by search text and the two enum
// filters, newest first. Filter enum values are validated here so a typo
// in a query parameter reads as a 400, not an empty result.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	if filter.Workplace != "" && !filter.Workplace.Valid() {
		return nil, apperror.ValidationFailed("workplace", "unknown workplace type")
	}
	if filter.JobType != "" && !filter.JobType.Valid() {
		return nil, apperror.ValidationFailed("type", "unknown job type")
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list jobs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// ListByHR returns the jobs posted by the given HR, newest first.
func (s *JobService) ListByHR(ctx context.Context, hrID string) ([]model.Job, error) {
	hrID = strings.TrimSpace(hrID)
	if hrID == "" {
		return nil, apperror.ValidationFailed("hrId", "hr ID is required")
	}
	jobs, err := s.jobs.ListByHR(ctx, hrID)
	if err != nil {
		s.logger.Error("failed to list hr jobs",
			slog.String("hrID", hrID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing jobs for hr %s: %w", hrID, err)
	}
	return jobs, nil
}

// Delete removes a job. Only the HR who posted it may delete it; anyone
// else gets apperror.ErrForbidden. The embedded applications go with it.
func (s *JobService) Delete(ctx context.Context, id, hrID string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.HRID != hrID {
		return apperror.Forbidden("job belongs to another hr")
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("job deleted",
		slog.String("jobID", id),
		slog.String("hrID", hrID),
	)
	return nil
}

// Recommend ranks the whole catalog against the user's profile text,
// best match first. A profile with no skills, experience, or projects
// cannot be matched against anything, so that reads as a validation
// error rather than an arbitrary ordering.
func (s *JobService) Recommend(ctx context.Context, userID string) ([]match.RankedJob, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasProfileContent() {
		return nil, apperror.ValidationFailed("profile",
			"add skills, experience, or projects to get recommendations")
	}

	jobs, err := s.jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing jobs for recommendations: %w", err)
	}
	if len(jobs) == 0 {
		return nil, apperror.NotFound("jobs", "catalog")
	}

	ranked := match.RankJobs(user, jobs)
	s.logger.Info("recommendations computed",
		slog.String("userID", userID),
		slog.Int("jobs", len(ranked)),
	)
	return ranked, nil
}
