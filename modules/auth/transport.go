package auth

import (
	"net/http"
	"strings"
)

// SessionCookieName is the cookie carrying the bearer material.
const SessionCookieName = "session_token"

// CredentialFromRequest extracts bearer material from the request: the
// session cookie takes precedence, then the Authorization header. An empty
// string means no credential was presented.
func CredentialFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return token
	}

	return ""
}
