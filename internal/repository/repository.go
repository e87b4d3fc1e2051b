// Package repository defines the data-access interfaces the service layer
// programs against. The concrete implementation lives in repository/local
// (whole-collection read-modify-write over the store); swapping in a
// relational implementation later only means satisfying these interfaces.
package repository

import (
	"context"

	"github.com/sakif/hirepro/internal/model"
)

// JobFilter narrows a job listing. Query is a case-insensitive substring
// match over title, company, and location; the zero value matches all.
type JobFilter struct {
	Query     string
	Workplace model.WorkplaceType
	JobType   model.JobType
}

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, filter JobFilter) ([]model.Job, error)
	ListByHR(ctx context.Context, hrID string) ([]model.Job, error)
	// Update persists the whole job, including its embedded applicants.
	Update(ctx context.Context, job *model.Job) error
	// UpdateFunc applies edit to the stored job and persists the result
	// in one critical section, so concurrent mutations cannot overwrite
	// each other's read snapshot. Application mutations (apply, status,
	// ranking) all go through it. If edit returns an error, nothing is
	// written and the error is returned as-is.
	UpdateFunc(ctx context.Context, id string, edit func(*model.Job) error) (*model.Job, error)
	Delete(ctx context.Context, id string) error
}

// User and HR methods carry the entity in the name (GetUserByID, not
// GetByID) because one concrete type implements all of these interfaces
// at once, and Go method sets can't overload on parameter types.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	// UpdateUserFunc is the atomic fetch-edit-save counterpart of
	// UpdateUser, for edits that must not race with other writers.
	UpdateUserFunc(ctx context.Context, id string, edit func(*model.User) error) (*model.User, error)
}

type HRRepository interface {
	CreateHR(ctx context.Context, hr *model.HR) error
	GetHRByID(ctx context.Context, id string) (*model.HR, error)
	GetHRByEmail(ctx context.Context, email string) (*model.HR, error)
	UpdateHR(ctx context.Context, hr *model.HR) error
	// UpdateHRFunc is the atomic fetch-edit-save counterpart of UpdateHR.
	UpdateHRFunc(ctx context.Context, id string, edit func(*model.HR) error) (*model.HR, error)
}

// SessionRepository manages the two singleton session pointer records.
// Get returns (nil, nil) when no session is stored for the role — absence
// is a normal state, not an error.
type SessionRepository interface {
	Get(ctx context.Context, role model.Role) (*model.Session, error)
	Set(ctx context.Context, session *model.Session) error
	Clear(ctx context.Context, role model.Role) error
}
