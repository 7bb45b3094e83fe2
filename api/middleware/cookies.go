package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
)

const visitorCookieMaxAge = 365 * 24 * time.Hour

// CookieOptions names the cookies the storefront issues and how they are flagged.
type CookieOptions struct {
	SessionName string
	VisitorName string
	Secure      bool
}

// CookieOptionsFrom derives cookie settings from config. Cookies are always
// Secure outside dev.
func CookieOptionsFrom(cfg *config.Config) CookieOptions {
	return CookieOptions{
		SessionName: cfg.Session.CookieName,
		VisitorName: cfg.Session.VisitorCookie,
		Secure:      cfg.Session.SecureCookies || !cfg.App.IsDev(),
	}
}

func (o CookieOptions) sessionName() string {
	if o.SessionName == "" {
		return "storefront_session"
	}
	return o.SessionName
}

func (o CookieOptions) visitorName() string {
	if o.VisitorName == "" {
		return "storefront_visitor"
	}
	return o.VisitorName
}

// SetSessionCookie stores the access token until it expires.
func SetSessionCookie(w http.ResponseWriter, opts CookieOptions, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.sessionName(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.sessionName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func setVisitorCookie(w http.ResponseWriter, opts CookieOptions, visitorID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.visitorName(),
		Value:    visitorID,
		Path:     "/",
		MaxAge:   int(visitorCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
