package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hsbali/social-media-app-server/internal/auth/dto"
	"github.com/hsbali/social-media-app-server/internal/auth/service"
	autherror "github.com/hsbali/social-media-app-server/internal/errors"
	"github.com/hsbali/social-media-app-server/pkg/constant"
)

const signupValidationMessage = "email is required and password must be at least 8 characters"

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func clientInfo(c *fiber.Ctx) dto.ClientInfo {
	return dto.ClientInfo{
		IP:        c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if input.Email == "" || len(input.Password) < constant.MinPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": signupValidationMessage})
	}

	result, err := h.auth.Signup(c.Context(), input, clientInfo(c))
	if err != nil {
		return errorResponse(c, err)
	}

	setRefreshTokenCookie(c, result.RefreshToken, result.RefreshTokenExpiresIn)

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	result, err := h.auth.Login(c.Context(), input, clientInfo(c))
	if err != nil {
		return errorResponse(c, err)
	}

	setRefreshTokenCookie(c, result.RefreshToken, result.RefreshTokenExpiresIn)

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(constant.RefreshTokenCookieName)
	if refreshToken == "" {
		return errorResponse(c, autherror.ErrAccessDenied)
	}

	result, err := h.auth.Refresh(c.Context(), refreshToken, clientInfo(c))
	if err != nil {
		return errorResponse(c, err)
	}

	setRefreshTokenCookie(c, result.RefreshToken, result.RefreshTokenExpiresIn)

	return c.Status(fiber.StatusOK).JSON(result)
}

// Me returns the identity the access guard attached to the request.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := AuthenticatedUser(c)
	if user == nil {
		return errorResponse(c, autherror.ErrAccessDenied)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

// Logout is fail-open at the transport boundary: whatever happens server-side,
// the client's cookie is cleared and the call reports success. Callers may
// only assume the client copy is gone, not that the session was invalidated.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(constant.RefreshTokenCookieName)

	message := "Logged out"
	if err := h.auth.Logout(c.Context(), refreshToken); err != nil {
		h.log.Error("logout failed, clearing cookie anyway", zap.Error(err))
		message = "Logged out with error"
	}

	clearRefreshTokenCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}
