package utils

import (
	"net/http"

	"rentvehicle/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie = "accessToken"
	SessionIDCookie   = "sessionId"
)

// SetAuthCookies attaches the access token and session id cookies. The
// storefront never reads these from script; identity is re-probed via /auth/me.
func SetAuthCookies(c *gin.Context, token, sessionID string) {
	cfg := config.AppConfig
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, token, cfg.AccessTokenDuration, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie(SessionIDCookie, sessionID, cfg.SessionDuration, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// ClearAuthCookies expires both auth cookies.
func ClearAuthCookies(c *gin.Context) {
	cfg := config.AppConfig
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie(SessionIDCookie, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// AccessTokenFromRequest reads the access token cookie, falling back to a
// bearer Authorization header for non-browser callers.
func AccessTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	return ""
}

// SessionIDFromRequest reads the session id cookie.
func SessionIDFromRequest(c *gin.Context) string {
	sid, err := c.Cookie(SessionIDCookie)
	if err != nil {
		return ""
	}
	return sid
}
