package handler

import (
	"net/http"
	"time"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/internal/constants"
	"github.com/gin-gonic/gin"
)

// cookieWriter sets and clears the httpOnly auth cookies. Secure is
// enabled outside development so the cookies only travel over TLS.
type cookieWriter struct {
	secure bool
}

func newCookieWriter(cfg *config.Config) *cookieWriter {
	return &cookieWriter{secure: cfg.App.Environment == constants.EnvProduction}
}

func (w *cookieWriter) setAuthCookies(c *gin.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAccessToken, accessToken, int(accessTTL.Seconds()), "/", "", w.secure, true)
	c.SetCookie(constants.CookieRefreshToken, refreshToken, int(refreshTTL.Seconds()), "/", "", w.secure, true)
}

func (w *cookieWriter) setAccessCookie(c *gin.Context, accessToken string, accessTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAccessToken, accessToken, int(accessTTL.Seconds()), "/", "", w.secure, true)
}

func (w *cookieWriter) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", "", w.secure, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", "", w.secure, true)
}
