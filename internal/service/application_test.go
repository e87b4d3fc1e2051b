package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository/local"
	"github.com/sakif/hirepro/internal/store"
)

func newTestAppService(t *testing.T) (*ApplicationService, *JobService, *local.DB) {
	t.Helper()
	db := local.New(store.NewMemory())
	apps := NewApplicationService(db, db, testLogger())
	jobs := NewJobService(db, db, db, testLogger())
	return apps, jobs, db
}

func TestApply(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	user := seedUser(t, db, "alice@example.com", []string{"go", "sql"})

	in := validJobInput("Go Backend Engineer")
	in.Description = "Write Go services and SQL."
	job, err := jobs.Create(ctx, hr.ID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	app, err := apps.Apply(ctx, job.ID, user.ID)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if app.Status != model.StatusPending {
		t.Errorf("Status = %q, want Pending", app.Status)
	}
	if app.Ranking != 0 {
		t.Errorf("Ranking = %d, want 0", app.Ranking)
	}
	if app.MatchScore <= 0 {
		t.Errorf("MatchScore = %f, overlapping profile should score above zero", app.MatchScore)
	}
	if app.AppliedAt.IsZero() {
		t.Error("AppliedAt not stamped")
	}

	// The application is persisted on the job itself.
	stored, err := db.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.Applicants) != 1 || stored.Applicants[0].UserID != user.ID {
		t.Errorf("stored applicants = %+v", stored.Applicants)
	}
}

func TestApply_Duplicate(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	user := seedUser(t, db, "alice@example.com", []string{"go"})
	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := apps.Apply(ctx, job.ID, user.ID); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if _, err := apps.Apply(ctx, job.ID, user.ID); !errors.Is(err, apperror.ErrAlreadyApplied) {
		t.Errorf("second Apply: error = %v, want ErrAlreadyApplied", err)
	}

	// Still exactly one application recorded.
	stored, err := db.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.Applicants) != 1 {
		t.Errorf("got %d applications, want 1", len(stored.Applicants))
	}
}

func TestApply_MissingJobOrUser(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	user := seedUser(t, db, "alice@example.com", []string{"go"})
	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := apps.Apply(ctx, "missing-job", user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing job: error = %v, want ErrNotFound", err)
	}
	if _, err := apps.Apply(ctx, job.ID, "missing-user"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing user: error = %v, want ErrNotFound", err)
	}
}

func TestListApplicantsForJob(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	other := seedHR(t, db, "Globex")
	alice := seedUser(t, db, "alice@example.com", []string{"go"})
	bob := seedUser(t, db, "bob@example.com", []string{"sql"})

	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, u := range []*model.User{alice, bob} {
		if _, err := apps.Apply(ctx, job.ID, u.ID); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	// Ownership: the other HR can't see the applicants.
	if _, err := apps.ListApplicantsForJob(ctx, job.ID, other.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign HR: error = %v, want ErrForbidden", err)
	}

	list, err := apps.ListApplicantsForJob(ctx, job.ID, hr.ID)
	if err != nil {
		t.Fatalf("ListApplicantsForJob() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d applicants, want 2", len(list))
	}
	byUser := map[string]model.EnrichedApplicant{}
	for _, a := range list {
		byUser[a.UserID] = a
	}
	if byUser[alice.ID].Name != "Alice" || byUser[alice.ID].Email != "alice@example.com" {
		t.Errorf("alice not enriched: %+v", byUser[alice.ID])
	}
}

func TestListApplicantsForJob_DanglingUser(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")

	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Plant an application whose user record doesn't exist.
	job.Applicants = append(job.Applicants, model.Application{
		UserID: "gone",
		Status: model.StatusPending,
	})
	if err := db.Update(ctx, job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := apps.ListApplicantsForJob(ctx, job.ID, hr.ID)
	if err != nil {
		t.Fatalf("ListApplicantsForJob() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d applicants, want 1", len(list))
	}
	if list[0].Name != "" || list[0].Email != "" {
		t.Errorf("dangling user should render blank, got %+v", list[0])
	}
}

func TestListApplicationsForUser(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	alice := seedUser(t, db, "alice@example.com", []string{"go"})
	bob := seedUser(t, db, "bob@example.com", []string{"sql"})

	first, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := jobs.Create(ctx, hr.ID, validJobInput("Data Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, jobID := range []string{first.ID, second.ID} {
		if _, err := apps.Apply(ctx, jobID, alice.ID); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if _, err := apps.Apply(ctx, first.ID, bob.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	list, err := apps.ListApplicationsForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d applications, want 2", len(list))
	}
	for _, a := range list {
		if a.Title == "" || a.Company != "Acme" {
			t.Errorf("application not enriched with job fields: %+v", a)
		}
	}

	// Bob sees only his one.
	list, err = apps.ListApplicationsForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser() error = %v", err)
	}
	if len(list) != 1 || list[0].JobID != first.ID {
		t.Errorf("bob's applications = %+v", list)
	}
}

func TestGetApplication(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	alice := seedUser(t, db, "alice@example.com", []string{"go"})

	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := apps.Apply(ctx, job.ID, alice.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := apps.GetApplication(ctx, job.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if got.JobID != job.ID || got.Title != "Backend Engineer" {
		t.Errorf("got %+v", got)
	}

	if _, err := apps.GetApplication(ctx, job.ID, "never-applied"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	other := seedHR(t, db, "Globex")
	alice := seedUser(t, db, "alice@example.com", []string{"go"})

	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := apps.Apply(ctx, job.ID, alice.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Any transition is allowed, in any order.
	for _, status := range []model.ApplicationStatus{
		model.StatusApproved,
		model.StatusRejected,
		model.StatusPending,
		model.StatusApproved,
	} {
		app, err := apps.UpdateStatus(ctx, job.ID, hr.ID, alice.ID, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
		if app.Status != status {
			t.Errorf("Status = %q, want %q", app.Status, status)
		}
	}

	// Persisted, and visible to the user.
	list, err := apps.ListApplicationsForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser: %v", err)
	}
	if len(list) != 1 || list[0].Status != model.StatusApproved {
		t.Errorf("user's view = %+v, want Approved", list)
	}

	if _, err := apps.UpdateStatus(ctx, job.ID, other.ID, alice.ID, model.StatusApproved); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign HR: error = %v, want ErrForbidden", err)
	}
	if _, err := apps.UpdateStatus(ctx, job.ID, hr.ID, alice.ID, "Maybe"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("bad status: error = %v, want ErrValidation", err)
	}
	if _, err := apps.UpdateStatus(ctx, job.ID, hr.ID, "never-applied", model.StatusApproved); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing application: error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRanking(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	alice := seedUser(t, db, "alice@example.com", []string{"go"})

	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := apps.Apply(ctx, job.ID, alice.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	app, err := apps.UpdateRanking(ctx, job.ID, hr.ID, alice.ID, 4)
	if err != nil {
		t.Fatalf("UpdateRanking() error = %v", err)
	}
	if app.Ranking != 4 {
		t.Errorf("Ranking = %d, want 4", app.Ranking)
	}

	for _, bad := range []int{-1, 6} {
		if _, err := apps.UpdateRanking(ctx, job.ID, hr.ID, alice.ID, bad); !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("ranking %d: error = %v, want ErrValidation", bad, err)
		}
	}
}

// TestApplicationLifecycle walks the whole flow end to end: two seekers
// apply to one posting, HR reviews, each side sees its own view.
func TestApplicationLifecycle(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	alice := seedUser(t, db, "alice@example.com", []string{"go", "sql", "docker"})
	bob := seedUser(t, db, "bob@example.com", []string{"photoshop"})

	in := validJobInput("Go Backend Engineer")
	in.Description = "Go, SQL, Docker, and plenty of backend plumbing."
	job, err := jobs.Create(ctx, hr.ID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	aliceApp, err := apps.Apply(ctx, job.ID, alice.ID)
	if err != nil {
		t.Fatalf("alice Apply: %v", err)
	}
	bobApp, err := apps.Apply(ctx, job.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob Apply: %v", err)
	}
	if aliceApp.MatchScore <= bobApp.MatchScore {
		t.Errorf("alice score %f should beat bob's %f", aliceApp.MatchScore, bobApp.MatchScore)
	}

	if _, err := apps.UpdateStatus(ctx, job.ID, hr.ID, alice.ID, model.StatusApproved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := apps.UpdateStatus(ctx, job.ID, hr.ID, bob.ID, model.StatusRejected); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := apps.UpdateRanking(ctx, job.ID, hr.ID, alice.ID, 5); err != nil {
		t.Fatalf("UpdateRanking: %v", err)
	}

	review, err := apps.ListApplicantsForJob(ctx, job.ID, hr.ID)
	if err != nil {
		t.Fatalf("ListApplicantsForJob: %v", err)
	}
	if len(review) != 2 {
		t.Fatalf("got %d applicants, want 2", len(review))
	}

	aliceView, err := apps.ListApplicationsForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser: %v", err)
	}
	if len(aliceView) != 1 || aliceView[0].Status != model.StatusApproved || aliceView[0].Ranking != 5 {
		t.Errorf("alice's view = %+v", aliceView)
	}

	bobView, err := apps.ListApplicationsForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser: %v", err)
	}
	if len(bobView) != 1 || bobView[0].Status != model.StatusRejected {
		t.Errorf("bob's view = %+v", bobView)
	}
}

func TestApply_Concurrent(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	job, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const applicants = 8
	users := make([]*model.User, applicants)
	for i := range users {
		users[i] = seedUser(t, db, fmt.Sprintf("user%d@example.com", i), []string{"go"})
	}

	// Every goroutine appends to the same job document. If the read and
	// the write-back were separate lock acquisitions, applies landing in
	// between would be overwritten and silently lost.
	var wg sync.WaitGroup
	errs := make([]error, applicants)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = apps.Apply(ctx, job.ID, users[i].ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Apply by user %d: %v", i, err)
		}
	}
	stored, err := db.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.Applicants) != applicants {
		t.Errorf("stored applicants = %d, want %d", len(stored.Applicants), applicants)
	}
}

func TestListApplicationsForUser_AfterJobDelete(t *testing.T) {
	apps, jobs, db := newTestAppService(t)
	ctx := context.Background()
	hr := seedHR(t, db, "Acme")
	user := seedUser(t, db, "alice@example.com", []string{"go"})

	kept, err := jobs.Create(ctx, hr.ID, validJobInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doomed, err := jobs.Create(ctx, hr.ID, validJobInput("Frontend Engineer"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, j := range []*model.Job{kept, doomed} {
		if _, err := apps.Apply(ctx, j.ID, user.ID); err != nil {
			t.Fatalf("Apply to %s: %v", j.Title, err)
		}
	}

	if err := jobs.Delete(ctx, doomed.ID, hr.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The deleted job's application vanishes with it.
	list, err := apps.ListApplicationsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListApplicationsForUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("applications after delete = %d, want 1", len(list))
	}
	if list[0].JobID != kept.ID {
		t.Errorf("remaining application JobID = %s, want %s", list[0].JobID, kept.ID)
	}
	if _, err := apps.GetApplication(ctx, doomed.ID, user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetApplication on deleted job: error = %v, want ErrNotFound", err)
	}
}
