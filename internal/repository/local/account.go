package local

import (
	"context"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
	"github.com/sakif/hirepro/internal/store"
)

// compile-time checks that *DB implements the account repositories
var (
	_ repository.UserRepository = (*DB)(nil)
	_ repository.HRRepository   = (*DB)(nil)
)

// Emails are compared case-insensitively everywhere: "Bob@x.com" and
// "bob@x.com" are the same account.
func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// --- job seekers ---

// CreateUser appends a new user to the users collection. The email must not
// belong to an existing user; that pre-check scan is the only uniqueness
// enforcement there is, which is why it runs inside the mutation lock.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return err
	}
	for i := range users {
		if sameEmail(users[i].Email, user.Email) {
			return apperror.Conflict("user", "email already registered")
		}
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	users = append(users, *user)
	return db.store.Write(ctx, store.CollectionUsers, users)
}

// GetUserByID returns the user with the given ID, or apperror.ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

// GetUserByEmail returns the user with the given email, or apperror.ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if sameEmail(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

// ListUsers returns every user record. The applicant-hydration join reads the
// whole collection anyway, so there is no narrower query to offer.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces the stored user record (matched by ID).
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			users[i] = *user
			return db.store.Write(ctx, store.CollectionUsers, users)
		}
	}
	return apperror.NotFound("user", user.ID)
}

// UpdateUserFunc applies edit to the stored user and persists the result
// under one lock acquisition, so concurrent profile edits cannot clobber
// each other. If edit returns an error, nothing is written.
func (db *DB) UpdateUserFunc(ctx context.Context, id string, edit func(*model.User) error) (*model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var users []model.User
	if err := db.store.Read(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if err := edit(&users[i]); err != nil {
			return nil, err
		}
		users[i].UpdatedAt = time.Now()
		if err := db.store.Write(ctx, store.CollectionUsers, users); err != nil {
			return nil, err
		}
		user := users[i]
		return &user, nil
	}
	return nil, apperror.NotFound("user", id)
}

// --- HR accounts ---
//
// Same shape as the user methods, over the hrs collection.

func (db *DB) CreateHR(ctx context.Context, hr *model.HR) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var hrs []model.HR
	if err := db.store.Read(ctx, store.CollectionHRs, &hrs); err != nil {
		return err
	}
	for i := range hrs {
		if sameEmail(hrs[i].Email, hr.Email) {
			return apperror.Conflict("hr", "email already registered")
		}
	}

	now := time.Now()
	hr.ID = xid.New().String()
	hr.CreatedAt = now
	hr.UpdatedAt = now

	hrs = append(hrs, *hr)
	return db.store.Write(ctx, store.CollectionHRs, hrs)
}

func (db *DB) GetHRByID(ctx context.Context, id string) (*model.HR, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var hrs []model.HR
	if err := db.store.Read(ctx, store.CollectionHRs, &hrs); err != nil {
		return nil, err
	}
	for i := range hrs {
		if hrs[i].ID == id {
			h := hrs[i]
			return &h, nil
		}
	}
	return nil, apperror.NotFound("hr", id)
}

func (db *DB) GetHRByEmail(ctx context.Context, email string) (*model.HR, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var hrs []model.HR
	if err := db.store.Read(ctx, store.CollectionHRs, &hrs); err != nil {
		return nil, err
	}
	for i := range hrs {
		if sameEmail(hrs[i].Email, email) {
			h := hrs[i]
			return &h, nil
		}
	}
	return nil, apperror.NotFound("hr", email)
}

func (db *DB) UpdateHR(ctx context.Context, hr *model.HR) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var hrs []model.HR
	if err := db.store.Read(ctx, store.CollectionHRs, &hrs); err != nil {
		return err
	}
	for i := range hrs {
		if hrs[i].ID == hr.ID {
			hr.UpdatedAt = time.Now()
			hrs[i] = *hr
			return db.store.Write(ctx, store.CollectionHRs, hrs)
		}
	}
	return apperror.NotFound("hr", hr.ID)
}

// UpdateHRFunc is the HR counterpart of UpdateUserFunc.
func (db *DB) UpdateHRFunc(ctx context.Context, id string, edit func(*model.HR) error) (*model.HR, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var hrs []model.HR
	if err := db.store.Read(ctx, store.CollectionHRs, &hrs); err != nil {
		return nil, err
	}
	for i := range hrs {
		if hrs[i].ID != id {
			continue
		}
		if err := edit(&hrs[i]); err != nil {
			return nil, err
		}
		hrs[i].UpdatedAt = time.Now()
		if err := db.store.Write(ctx, store.CollectionHRs, hrs); err != nil {
			return nil, err
		}
		hr := hrs[i]
		return &hr, nil
	}
	return nil, apperror.NotFound("hr", id)
}
