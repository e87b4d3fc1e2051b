package local

import (
	"context"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
	"github.com/sakif/hirepro/internal/store"
)

var _ repository.SessionRepository = (*DB)(nil)

// sessionCollection maps a role to its pointer record's collection name.
// There are exactly two: hrInfo for employers, userInfo for job seekers.
func sessionCollection(role model.Role) (string, error) {
	switch role {
	case model.RoleHR:
		return store.CollectionHRInfo, nil
	case model.RoleUser:
		return store.CollectionUserInfo, nil
	}
	return "", apperror.ValidationFailed("role", "unknown session role")
}

// Get reads the session pointer for the role. A missing pointer (nobody
// logged in, or the stored record has no id) returns (nil, nil) — an
// anonymous session is a normal state, not a failure.
func (db *DB) Get(ctx context.Context, role model.Role) (*model.Session, error) {
	collection, err := sessionCollection(role)
	if err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	var session model.Session
	if err := db.store.Read(ctx, collection, &session); err != nil {
		return nil, err
	}
	if session.ID == "" {
		return nil, nil
	}
	return &session, nil
}

// Set overwrites the role's session pointer. Called at login and whenever
// a profile edit changes the fields the pointer caches — keeping the two
// writes in one code path is what stops the pointer drifting from the
// account record.
func (db *DB) Set(ctx context.Context, session *model.Session) error {
	collection, err := sessionCollection(session.Role)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.Write(ctx, collection, session)
}

// Clear removes the role's session pointer. Used at logout.
func (db *DB) Clear(ctx context.Context, role model.Role) error {
	collection, err := sessionCollection(role)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.Delete(ctx, collection)
}
