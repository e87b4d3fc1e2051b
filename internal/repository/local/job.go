package local

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
	"github.com/sakif/hirepro/internal/store"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors here instead of at some
// distant call site. The `_` means the variable itself is never used.
var _ repository.JobRepository = (*DB)(nil)

// Create assigns the job an ID and posted timestamp and appends it to the
// jobs collection.
//
// ID GENERATION WITH xid:
// The original generated job IDs from the creation timestamp, which
// collides when two jobs are created in the same millisecond. xid IDs are
// 20 URL-safe chars, globally unique, and still sortable by creation time.
func (db *DB) Create(ctx context.Context, job *model.Job) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	job.ID = xid.New().String()
	job.PostedAt = time.Now()
	if job.Applicants == nil {
		job.Applicants = []model.Application{}
	}

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return err
	}
	jobs = append(jobs, *job)
	return db.store.Write(ctx, store.CollectionJobs, jobs)
}

// GetByID returns the job with the given ID, or apperror.ErrNotFound.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Job, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			job := jobs[i]
			return &job, nil
		}
	}
	return nil, apperror.NotFound("job", id)
}

// List returns all jobs matching the filter, newest first.
//
// The search is a linear scan with case-insensitive substring matching
// over title, company, and location — no index, no pagination. The whole
// catalog is one JSON document, so it is already in memory by the time we
// filter it.
func (db *DB) List(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return nil, err
	}

	matched := make([]model.Job, 0, len(jobs))
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, job := range jobs {
		if query != "" && !matchesQuery(job, query) {
			continue
		}
		if filter.Workplace != "" && job.WorkplaceType != filter.Workplace {
			continue
		}
		if filter.JobType != "" && job.JobType != filter.JobType {
			continue
		}
		matched = append(matched, job)
	}

	sortByPostedDesc(matched)
	return matched, nil
}

// ListByHR returns the jobs owned by the given HR account, newest first.
func (db *DB) ListByHR(ctx context.Context, hrID string) ([]model.Job, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return nil, err
	}

	owned := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.HRID == hrID {
			owned = append(owned, job)
		}
	}
	sortByPostedDesc(owned)
	return owned, nil
}

// Update replaces the stored job (matched by ID) with the given one.
// This is how applicant lists get persisted after apply/status/ranking
// mutations — the whole job, applicants included, is written back.
func (db *DB) Update(ctx context.Context, job *model.Job) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == job.ID {
			jobs[i] = *job
			return db.store.Write(ctx, store.CollectionJobs, jobs)
		}
	}
	return apperror.NotFound("job", job.ID)
}

// UpdateFunc re-reads the job, applies edit, and writes the result back,
// all under the write lock. A service that did GetByID then Update as two
// calls would read its snapshot under one lock acquisition and write
// under another — two concurrent mutators would both edit the same
// snapshot and the second write would erase the first's change. Holding
// the lock across the whole read-edit-write closes that window.
func (db *DB) UpdateFunc(ctx context.Context, id string, edit func(*model.Job) error) (*model.Job, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID != id {
			continue
		}
		if err := edit(&jobs[i]); err != nil {
			return nil, err
		}
		if err := db.store.Write(ctx, store.CollectionJobs, jobs); err != nil {
			return nil, err
		}
		job := jobs[i]
		return &job, nil
	}
	return nil, apperror.NotFound("job", id)
}

// Delete removes the job by ID. The applications embedded in it are
// discarded with it — they have no life outside their job.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var jobs []model.Job
	if err := db.store.Read(ctx, store.CollectionJobs, &jobs); err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			jobs = append(jobs[:i], jobs[i+1:]...)
			return db.store.Write(ctx, store.CollectionJobs, jobs)
		}
	}
	return apperror.NotFound("job", id)
}

func matchesQuery(job model.Job, query string) bool {
	return strings.Contains(strings.ToLower(job.Title), query) ||
		strings.Contains(strings.ToLower(job.Company), query) ||
		strings.Contains(strings.ToLower(job.Location), query)
}

func sortByPostedDesc(jobs []model.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].PostedAt.After(jobs[j].PostedAt)
	})
}
