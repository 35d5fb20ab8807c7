package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hsbali/social-media-app-server/pkg/constant"
)

// The refresh token only ever travels in this cookie. Attributes are fixed:
// cross-site clients need SameSite=None, which in turn requires Secure.
func setRefreshTokenCookie(c *fiber.Ctx, token string, expiresInMs int64) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(expiresInMs) * time.Millisecond),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func clearRefreshTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(constant.LogoutCookieTTLMs * time.Millisecond),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
