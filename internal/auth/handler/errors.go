package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/hsbali/social-media-app-server/internal/errors"
)

// statusCode maps a domain error to its external representation. Token
// verification failures count as authentication failures, everything else the
// domain knows about is a client error.
func statusCode(err error) int {
	switch {
	case errors.Is(err, autherror.ErrAccessDenied),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrIncorrectConfirmPassword),
		errors.Is(err, autherror.ErrUserAlreadyExists),
		errors.Is(err, autherror.ErrInvalidCredential),
		errors.Is(err, autherror.ErrInvalidSessionRequest),
		errors.Is(err, autherror.ErrSessionExpired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusCode(err)).JSON(fiber.Map{"error": err.Error()})
}
