// Package auth provides JWT session tokens and password hashing.
//
// AUTHENTICATION FLOW:
//  1. Client POSTs credentials to /hr/login or /user/login
//  2. Server verifies the bcrypt hash, writes the session pointer record,
//     and issues a JWT stored in an HttpOnly cookie
//  3. On subsequent requests, middleware reads the cookie, validates the
//     JWT, and puts the caller's identity (id + role) in the request context
//  4. Logout clears the cookie and the session pointer
//
// WHY JWT?
// JWT is stateless — the token itself carries the user ID, the role, and
// the expiry, all signed with the server secret. Validating a request
// needs no store lookup, and nobody can alter the claims without the key.
//
// ROLE-SCOPED TOKENS:
// The same server authenticates two kinds of account (HR and job seeker),
// so the token carries a "role" claim next to the standard "sub". An HR
// token never authorizes a user route and vice versa — the middleware
// checks the role, not just the signature.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakif/hirepro/internal/model"
)

const issuer = "hirepro"

// TokenTTL is how long a session token stays valid. After expiry the
// client has to log in again.
const TokenTTL = 24 * time.Hour

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used to sign and verify — the same secret must do both.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the standard registered claims plus the
// account role. "sub" holds the account's internal ID.
type claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a validated token resolves to.
type Identity struct {
	ID   string
	Role model.Role
}

// Generate creates and signs a session token for the given account.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and all this
// single-server deployment needs.
func (s *TokenService) Generate(id string, role model.Role) (string, error) {
	return s.GenerateWithDuration(id, role, TokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry. Used by
// Generate and by tests that need an already-expired token.
func (s *TokenService) GenerateWithDuration(id string, role model.Role, d time.Duration) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("auth: unknown role %q", role)
	}

	now := time.Now()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a JWT string and returns the identity it
// encodes.
//
// The jwt library checks the signature, the expiry, and the issuer.
// Passing jwt.WithValidMethods pins the algorithm to HS256 — without it,
// an attacker could try an algorithm-confusion attack by sending a token
// signed with "none".
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("auth: token has no subject")
	}
	if !c.Role.Valid() {
		return Identity{}, fmt.Errorf("auth: token has no valid role")
	}

	return Identity{ID: c.Subject, Role: c.Role}, nil
}
