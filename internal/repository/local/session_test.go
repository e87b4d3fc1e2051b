package local

import (
	"context"
	"testing"

	"github.com/sakif/hirepro/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Nobody logged in yet — Get returns nil, nil for both roles.
	for _, role := range []model.Role{model.RoleHR, model.RoleUser} {
		sess, err := db.Get(ctx, role)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", role, err)
		}
		if sess != nil {
			t.Errorf("Get(%s) with no session = %+v, want nil", role, sess)
		}
	}

	if err := db.Set(ctx, &model.Session{ID: "hr-1", Role: model.RoleHR, Name: "Alice", Email: "alice@co.com", Company: "Acme"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sess, err := db.Get(ctx, model.RoleHR)
	if err != nil {
		t.Fatalf("Get(hr) error = %v", err)
	}
	if sess == nil || sess.ID != "hr-1" || sess.Company != "Acme" {
		t.Errorf("Get(hr) = %+v, want the stored HR session", sess)
	}

	// The two roles' pointers are independent records.
	userSess, err := db.Get(ctx, model.RoleUser)
	if err != nil {
		t.Fatalf("Get(user) error = %v", err)
	}
	if userSess != nil {
		t.Errorf("Get(user) = %+v, want nil while only the HR is logged in", userSess)
	}

	if err := db.Clear(ctx, model.RoleHR); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	sess, err = db.Get(ctx, model.RoleHR)
	if err != nil {
		t.Fatalf("Get(hr) after Clear() error = %v", err)
	}
	if sess != nil {
		t.Errorf("Get(hr) after Clear() = %+v, want nil", sess)
	}
}

func TestSessionOverwrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// A login while another account of the same role is logged in simply
	// replaces the pointer record.
	if err := db.Set(ctx, &model.Session{ID: "u1", Role: model.RoleUser, Name: "Bob"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := db.Set(ctx, &model.Session{ID: "u2", Role: model.RoleUser, Name: "Carol"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sess, err := db.Get(ctx, model.RoleUser)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if sess == nil || sess.ID != "u2" {
		t.Errorf("Get() = %+v, want the second session", sess)
	}
}
