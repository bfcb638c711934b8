// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/avaolo/gatekeeper/internal/auth"
)

type ctxKey string

const userKey ctxKey = "user"

// BasicAuth returns a middleware that enforces HTTP Basic authentication
// on every path the classifier does not mark public.
//
// Public paths pass straight through; any Authorization header they carry
// is ignored. Protected paths are rejected with 401 and a
// WWW-Authenticate challenge when the header is missing, uses a scheme
// other than Basic, does not decode to a base64 "username:password"
// payload, or carries credentials the store does not recognize.
//
// On success, the username is stored in the request context so it can be
// read downstream as the authenticated caller.
func BasicAuth(creds *auth.Credentials, public *auth.PublicPaths, realm string) func(http.Handler) http.Handler {
	challenge := `Basic realm="` + realm + `", charset="UTF-8"`
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, challenge, "Authentication required")
				return
			}

			scheme, payload, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Basic") {
				reject(w, challenge, "Invalid authentication method")
				return
			}

			username, password, ok := decodeBasic(payload)
			if !ok {
				reject(w, challenge, "Invalid authentication format")
				return
			}

			if !creds.Verify(username, password) {
				reject(w, challenge, "Invalid username or password")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), username)))
		})
	}
}

// decodeBasic decodes a Basic payload into a username and password.
// The decoded bytes are split on the first colon only; passwords may
// themselves contain colons.
func decodeBasic(payload string) (username, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", "", false
	}
	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return "", "", false
	}
	return username, password, true
}

// reject writes a 401 with the Basic challenge header so standards-compliant
// clients know to prompt for credentials.
func reject(w http.ResponseWriter, challenge, message string) {
	w.Header().Set("WWW-Authenticate", challenge)
	http.Error(w, message, http.StatusUnauthorized)
}

// WithUser returns a context carrying the authenticated username.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// GetUserFromContext extracts the authenticated username from the request
// context. Returns an empty string if not found.
func GetUserFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(userKey).(string); ok {
		return s
	}
	return ""
}
