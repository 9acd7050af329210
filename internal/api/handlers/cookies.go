// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vcro/widget-service/internal/services/session"
)

// ginCookieStore adapts a gin request/response pair to the session
// cookie store. The widget is embedded cross-site, so cookies are set
// with SameSite=None and Secure.
type ginCookieStore struct {
	c *gin.Context
}

// NewCookieStore creates a cookie store bound to the request.
func NewCookieStore(c *gin.Context) session.CookieStore {
	return &ginCookieStore{c: c}
}

// Get returns the cookie value, or false if absent.
func (s *ginCookieStore) Get(name string) (string, bool) {
	value, err := s.c.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set persists the cookie with the given max age.
func (s *ginCookieStore) Set(name, value string, maxAge time.Duration) {
	s.c.SetSameSite(http.SameSiteNoneMode)
	s.c.SetCookie(name, value, int(maxAge.Seconds()), "/", "", true, true)
}

// Clear removes the cookie by expiring it immediately.
func (s *ginCookieStore) Clear(name string) {
	s.c.SetSameSite(http.SameSiteNoneMode)
	s.c.SetCookie(name, "", -1, "/", "", true, true)
}
