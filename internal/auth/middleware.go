package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is unexported so no other package can read or overwrite the
// user id stored in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// CookieName is the HttpOnly cookie the login handler sets.
const CookieName = "token"

// OptionalAuth extracts the user identity if a valid token is present, but
// never blocks the request. Missing, expired or forged tokens all leave the
// request anonymous.
//
// A nil TokenService (no JWT_SECRET configured) makes this a pass-through.
//
// Chi applies middlewares in a chain: req → M1 → M2 → Handler → M2 → M1 → resp
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokens == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID returns a copy of ctx carrying an authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's id.
// Returns (0, false) for anonymous requests.
//
//	if id, ok := auth.UserIDFromContext(r.Context()); ok && id != target {
//	    // token belongs to someone else
//	}
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// extractUserID reads the token from "Authorization: Bearer <jwt>" or,
// failing that, from the "token" cookie, and validates it.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
			return tokens.Validate(strings.TrimSpace(raw))
		}
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		// http.ErrNoCookie: not an error, just anonymous
		return 0, err
	}
	return tokens.Validate(cookie.Value)
}
