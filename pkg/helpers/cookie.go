package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// Manager writes the auth cookie pair with consistent attributes. Cookies are
// HttpOnly; Secure and SameSite=None are enabled together so cross-site
// frontends work over HTTPS while local development stays on Lax.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) sameSite() http.SameSite {
	if m.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (m *Manager) set(c *gin.Context, name, value string, expiry time.Time) {
	maxAge := int(time.Until(expiry).Seconds())
	if value == "" {
		maxAge = -1
	}
	c.SetSameSite(m.sameSite())
	c.SetCookie(name, value, maxAge, "/", m.Domain, m.Secure, true)
}

// SetPair writes both auth cookies in one call.
func (m *Manager) SetPair(c *gin.Context, access string, accessExpiry time.Time, refresh string, refreshExpiry time.Time) {
	m.set(c, AccessCookieName, access, accessExpiry)
	m.set(c, RefreshCookieName, refresh, refreshExpiry)
}

// Clear expires both auth cookies.
func (m *Manager) Clear(c *gin.Context) {
	m.set(c, AccessCookieName, "", time.Time{})
	m.set(c, RefreshCookieName, "", time.Time{})
}
