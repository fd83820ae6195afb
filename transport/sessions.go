package transport

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/muhammadheryan/storefront/cmd/config"
)

// NewSessionStore builds the cookie store holding the session id. Cookies are
// Secure only in production so plain-http development keeps working.
func NewSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Auth.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.IsProduction() {
		store.Options.SameSite = http.SameSiteStrictMode
	}
	// MaxAge keeps the cookie lifetime and the codec timestamp check in step.
	store.MaxAge(int(cfg.Auth.SessionExpTime.Seconds()))
	return store
}
