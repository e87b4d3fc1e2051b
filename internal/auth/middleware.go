package auth

import (
	"context"
	"net/http"

	"github.com/sakif/hirepro/internal/model"
)

// CookieName is the HttpOnly cookie holding the session JWT.
// HttpOnly means JavaScript cannot read it, which keeps an XSS from
// stealing the token.
const CookieName = "token"

// contextKey is an unexported type for context keys in this package.
// Using a package-private type (instead of a bare string) means only this
// package can read or write the identity in a request context — no other
// package can collide with or shadow the key.
type contextKey string

const identityKey contextKey = "identity"

// RequireRole returns a middleware that enforces authentication for a
// specific account role. It reads the JWT from the session cookie,
// validates it, checks the role claim, and stores the identity in the
// request context. Missing/invalid tokens and tokens for the other role
// both get 401 — the client's fix for either is the same login page.
//
// MIDDLEWARE PATTERN:
// A middleware takes an http.Handler and returns a new http.Handler that
// wraps it. Chi applies them in a chain:
//
//	req → RequestID → Logger → RequireRole → handler
func RequireRole(tokens *TokenService, role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, tokens)
			if err != nil || identity.Role != role {
				// Not http.Error: it overwrites Content-Type with
				// text/plain, and the body here is JSON.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}` + "\n"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated caller from the request
// context. Returns (zero, false) on anonymous requests.
//
// Usage in handlers:
//
//	id, ok := auth.IdentityFromContext(r.Context())
//	if !ok { ... }
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.ID != ""
}

// WithIdentity returns a context carrying the identity, exactly as
// RequireRole would set it. Handler tests use this to simulate an
// authenticated request without running the middleware chain.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// extractIdentity reads the session cookie and validates the JWT in it.
func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		// http.ErrNoCookie — anonymous request
		return Identity{}, err
	}
	return tokens.Validate(cookie.Value)
}

// SetSessionCookie writes the session JWT as an HttpOnly cookie.
// SameSite=Lax keeps the cookie off cross-site POSTs (CSRF mitigation).
// Secure should be set behind HTTPS in production.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the browser to delete the session cookie
// immediately. Used at logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
