package view

import (
	"net/http"
	"time"
)

const defaultCookieTTL = 24 * time.Hour

// NewSessionCookie - builds the HttpOnly session cookie. It lives as long as the stored session,
// a non-positive ttl falls back to one day.
func NewSessionCookie(sessionID string, ttl time.Duration) *http.Cookie {
	if ttl <= 0 {
		ttl = defaultCookieTTL
	}

	return &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
	}
}
