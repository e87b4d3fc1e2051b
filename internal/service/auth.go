// Package service — account and session business logic.
//
// AuthService owns registration, login, and profile management for both
// account types. It sits between the HTTP handlers and the repositories:
//
//	AuthHandler (HTTP) → AuthService (business rules) → HR/User repositories
//	                   ↘ TokenService (JWT), PasswordService (bcrypt)
//
// KEY RESPONSIBILITIES:
//   - Enforce credential rules (hashed passwords, unique emails)
//   - Issue JWTs on successful register/login
//   - Keep the persisted session pointer in step with the account record
//
// NOTE ON THE SESSION POINTER:
// Besides the JWT cookie (the actual credential), a small Session record is
// persisted per role. Profile edits rewrite it in the same call that updates
// the account, so a logged-in client re-reading its session always sees the
// edited name/company.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/hirepro/internal/apperror"
	"github.com/sakif/hirepro/internal/auth"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
)

// Validation constants for account fields.
const (
	MinPasswordLength = 8
	MaxNameLength     = 100
)

// AuthService handles account business logic for both roles.
type AuthService struct {
	users     repository.UserRepository
	hrs       repository.HRRepository
	sessions  repository.SessionRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go (or main.go) when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	hrs repository.HRRepository,
	sessions repository.SessionRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		hrs:       hrs,
		sessions:  sessions,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// HRAuth bundles the HR record and its issued JWT so the handler can set
// the cookie and respond in one step.
type HRAuth struct {
	HR    *model.HR
	Token string
}

// UserAuth is the job-seeker counterpart of HRAuth.
type UserAuth struct {
	User  *model.User
	Token string
}

// RegisterHR creates an employer account, issues a token, and records the
// session pointer. Returns apperror.ErrConflict if the email is taken.
func (s *AuthService) RegisterHR(ctx context.Context, name, email, password, company string) (*HRAuth, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	company = strings.TrimSpace(company)

	if err := validateAccountBasics(name, email, password); err != nil {
		return nil, err
	}
	if company == "" {
		return nil, apperror.ValidationFailed("company", "company is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	hr := &model.HR{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Company:      company,
	}
	if err := s.hrs.CreateHR(ctx, hr); err != nil {
		return nil, err
	}

	token, err := s.issueSession(ctx, hr.ID, model.RoleHR, hr.Name, hr.Email, hr.Company)
	if err != nil {
		return nil, err
	}

	s.logger.Info("hr registered",
		slog.String("hrID", hr.ID),
		slog.String("company", hr.Company),
	)
	return &HRAuth{HR: hr, Token: token}, nil
}

// LoginHR authenticates an employer by email and password.
//
// Unknown email and wrong password both come back as the same Unauthorized
// error — the response must not reveal which half was wrong.
func (s *AuthService) LoginHR(ctx context.Context, email, password string) (*HRAuth, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	hr, err := s.hrs.GetHRByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := s.passwords.Verify(hr.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := s.issueSession(ctx, hr.ID, model.RoleHR, hr.Name, hr.Email, hr.Company)
	if err != nil {
		return nil, err
	}

	s.logger.Info("hr logged in", slog.String("hrID", hr.ID))
	return &HRAuth{HR: hr, Token: token}, nil
}

// RegisterUser creates a job-seeker account, issues a token, and records
// the session pointer. Returns apperror.ErrConflict if the email is taken.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*UserAuth, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateAccountBasics(name, email, password); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueSession(ctx, user.ID, model.RoleUser, user.Name, user.Email, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))
	return &UserAuth{User: user, Token: token}, nil
}

// LoginUser authenticates a job-seeker by email and password. An unknown
// email is an authentication failure, never an implicit registration.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*UserAuth, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := s.issueSession(ctx, user.ID, model.RoleUser, user.Name, user.Email, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return &UserAuth{User: user, Token: token}, nil
}

// Logout clears the persisted session pointer for the role. The handler
// clears the cookie; this clears the stored record. Logging out when no
// session is recorded is not an error.
func (s *AuthService) Logout(ctx context.Context, role model.Role) error {
	if !role.Valid() {
		return apperror.ValidationFailed("role", "unknown role")
	}
	if err := s.sessions.Clear(ctx, role); err != nil {
		return fmt.Errorf("service/auth: clearing %s session: %w", role, err)
	}
	return nil
}

// CurrentSession returns the persisted session pointer for the role, or
// (nil, nil) when nobody is recorded as logged in.
func (s *AuthService) CurrentSession(ctx context.Context, role model.Role) (*model.Session, error) {
	if !role.Valid() {
		return nil, apperror.ValidationFailed("role", "unknown role")
	}
	return s.sessions.Get(ctx, role)
}

// GetHR returns the HR account for the given ID.
func (s *AuthService) GetHR(ctx context.Context, id string) (*model.HR, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "hr ID is required")
	}
	return s.hrs.GetHRByID(ctx, id)
}

// GetUser returns the job-seeker account for the given ID. HRs use this
// (via their own route) to view an applicant's full profile.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.users.GetUserByID(ctx, id)
}

// HRProfileUpdate carries the editable HR profile fields. Zero-value
// string fields mean "leave unchanged".
type HRProfileUpdate struct {
	Name    string
	Company string
}

// UpdateHRProfile applies the edit and rewrites the session pointer so a
// client re-reading its session sees the new name/company immediately.
func (s *AuthService) UpdateHRProfile(ctx context.Context, id string, in HRProfileUpdate) (*model.HR, error) {
	hr, err := s.hrs.UpdateHRFunc(ctx, id, func(hr *model.HR) error {
		if name := strings.TrimSpace(in.Name); name != "" {
			if len(name) > MaxNameLength {
				return apperror.ValidationFailed("name",
					fmt.Sprintf("name must be %d characters or less", MaxNameLength))
			}
			hr.Name = name
		}
		if company := strings.TrimSpace(in.Company); company != "" {
			hr.Company = company
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.refreshSession(ctx, hr.ID, model.RoleHR, hr.Name, hr.Email, hr.Company); err != nil {
		return nil, err
	}

	s.logger.Info("hr profile updated", slog.String("hrID", hr.ID))
	return hr, nil
}

// UserProfileUpdate carries the editable job-seeker profile fields.
// String fields follow "empty means unchanged"; nil slices mean unchanged
// while empty non-nil slices clear the section.
type UserProfileUpdate struct {
	Name           string
	Location       string
	Phone          string
	Bio            string
	Skills         []string
	Languages      []model.Language
	Experience     []model.WorkExperience
	Projects       []model.Project
	Certifications []model.Certification
}

// UpdateUserProfile applies the edit and rewrites the session pointer.
func (s *AuthService) UpdateUserProfile(ctx context.Context, id string, in UserProfileUpdate) (*model.User, error) {
	user, err := s.users.UpdateUserFunc(ctx, id, func(user *model.User) error {
		if name := strings.TrimSpace(in.Name); name != "" {
			if len(name) > MaxNameLength {
				return apperror.ValidationFailed("name",
					fmt.Sprintf("name must be %d characters or less", MaxNameLength))
			}
			user.Name = name
		}
		if loc := strings.TrimSpace(in.Location); loc != "" {
			user.Location = loc
		}
		if phone := strings.TrimSpace(in.Phone); phone != "" {
			user.Phone = phone
		}
		if bio := strings.TrimSpace(in.Bio); bio != "" {
			user.Bio = bio
		}
		if in.Skills != nil {
			user.Skills = in.Skills
		}
		if in.Languages != nil {
			user.Languages = in.Languages
		}
		if in.Experience != nil {
			user.Experience = in.Experience
		}
		if in.Projects != nil {
			user.Projects = in.Projects
		}
		if in.Certifications != nil {
			user.Certifications = in.Certifications
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.refreshSession(ctx, user.ID, model.RoleUser, user.Name, user.Email, ""); err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", slog.String("userID", user.ID))
	return user, nil
}

// issueSession generates the JWT and persists the session pointer. Used by
// every register/login path so the two always happen together.
func (s *AuthService) issueSession(ctx context.Context, id string, role model.Role, name, email, company string) (string, error) {
	token, err := s.tokens.Generate(id, role)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for %s %s: %w", role, id, err)
	}
	if err := s.sessions.Set(ctx, &model.Session{
		ID:       id,
		Role:     role,
		Name:     name,
		Email:    email,
		Company:  company,
		IssuedAt: time.Now().UTC(),
	}); err != nil {
		return "", fmt.Errorf("service/auth: recording %s session: %w", role, err)
	}
	return token, nil
}

// refreshSession rewrites the session pointer after a profile edit, but
// only when the edited account is the one currently recorded. Editing when
// someone else's session is recorded (or none) must not plant a new one.
func (s *AuthService) refreshSession(ctx context.Context, id string, role model.Role, name, email, company string) error {
	current, err := s.sessions.Get(ctx, role)
	if err != nil {
		return fmt.Errorf("service/auth: reading %s session: %w", role, err)
	}
	if current == nil || current.ID != id {
		return nil
	}
	current.Name = name
	current.Email = email
	current.Company = company
	if err := s.sessions.Set(ctx, current); err != nil {
		return fmt.Errorf("service/auth: rewriting %s session: %w", role, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateAccountBasics(name, email, password string) error {
	if name == "" {
		return apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	}
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return apperror.ValidationFailed("email", "email must be a valid address")
	}
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
