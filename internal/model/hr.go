package model

import "time"

// HR is an employer-side account. HRs post jobs under their company name
// and review the applicants; they never apply to anything themselves, so
// the two account types stay as separate structs and separate collections
// rather than one user table with a role column.
type HR struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Company      string    `json:"company"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role distinguishes the two account types in sessions and tokens.
type Role string

const (
	RoleHR   Role = "hr"
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the two known account types.
func (r Role) Valid() bool {
	return r == RoleHR || r == RoleUser
}

// Session is the persisted "who is currently logged in" pointer record —
// a shallow copy of the account's identifying fields, stored under the
// hrInfo/userInfo collection for its role. It is a cache: the account
// record stays the source of truth, and every profile edit rewrites the
// pointer in the same operation so the two cannot drift apart.
type Session struct {
	ID       string    `json:"id"`
	Role     Role      `json:"role"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Company  string    `json:"company,omitempty"` // HR sessions only
	IssuedAt time.Time `json:"issuedAt"`
}
