package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hsbali/social-media-app-server/internal/auth/domain"
	"github.com/hsbali/social-media-app-server/internal/auth/dto"
	"github.com/hsbali/social-media-app-server/internal/auth/handler"
	"github.com/hsbali/social-media-app-server/internal/auth/service"
	"github.com/hsbali/social-media-app-server/internal/mocks"
	"github.com/hsbali/social-media-app-server/pkg/constant"
)

type handlerFixture struct {
	handler *handler.AuthHandler
	repo    *mocks.MockUserRepository
	store   *mocks.MockSessionStore
	tokens  *mocks.MockTokenSigner
}

func newHandlerFixture(ctrl *gomock.Controller) handlerFixture {
	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockStore := mocks.NewMockSessionStore(ctrl)
	mockTokens := mocks.NewMockTokenSigner(ctrl)
	sessions := service.NewSessionService(mockStore, mockTokens)
	auth := service.NewAuthService(mockRepo, sessions, mockTokens)

	return handlerFixture{
		handler: handler.NewAuthHandler(auth, zap.NewNop()),
		repo:    mockRepo,
		store:   mockStore,
		tokens:  mockTokens,
	}
}

func jsonRequest(method, target string, body any) *http.Request {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == constant.RefreshTokenCookieName {
			return cookie
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(ctrl)
	app := fiber.New()
	app.Post("/signup", f.handler.Signup)

	input := dto.SignupInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "a@x.com",
		Password:        "correct123",
		ConfirmPassword: "correct123",
	}

	t.Run("success sets cookie", func(t *testing.T) {
		f.repo.EXPECT().GetByEmail(gomock.Any(), input.Email, domain.UserQueryOptions{}).Return(nil, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, user *domain.User) (*domain.User, error) {
				user.ID = 7
				return user, nil
			})
		f.tokens.EXPECT().SignAccessToken(gomock.Any()).Return("access", int64(86400000), nil)
		f.store.EXPECT().FindByFingerprint(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.store.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&domain.RefreshSession{ID: "session-1", UserID: 7, Valid: true}, nil)
		f.tokens.EXPECT().SignRefreshToken(gomock.Any()).Return("refresh", int64(630720000000), nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		cookie := refreshCookie(t, resp)
		require.NotNil(t, cookie)
		assert.Equal(t, "refresh", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)

		var body struct {
			User                 *dto.UserOutput `json:"user"`
			AccessToken          string          `json:"accessToken"`
			AccessTokenExpiresIn int64           `json:"accessTokenExpiresIn"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(7), body.User.ID)
		assert.Equal(t, "access", body.AccessToken)
		assert.Equal(t, int64(86400000), body.AccessTokenExpiresIn)
	})

	t.Run("confirm password mismatch", func(t *testing.T) {
		mismatch := input
		mismatch.ConfirmPassword = "different1"

		resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", mismatch))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, refreshCookie(t, resp))
	})

	t.Run("short password", func(t *testing.T) {
		short := input
		short.Password = "short"
		short.ConfirmPassword = "short"

		resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", short))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "email is required and password must be at least 8 characters", body["error"])
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(ctrl)
	app := fiber.New()
	app.Post("/login", f.handler.Login)

	t.Run("invalid credential", func(t *testing.T) {
		f.repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com", domain.UserQueryOptions{WithPassword: true}).Return(nil, nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/login", dto.LoginInput{Email: "a@x.com", Password: "wrong"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, refreshCookie(t, resp))
	})

	t.Run("success", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct123"), bcrypt.MinCost)
		require.NoError(t, err)
		f.repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com", domain.UserQueryOptions{WithPassword: true}).
			Return(&domain.User{ID: 42, Email: "a@x.com", PasswordHash: string(hash)}, nil)
		f.tokens.EXPECT().SignAccessToken(gomock.Any()).Return("access", int64(1200000), nil)
		f.store.EXPECT().FindByFingerprint(gomock.Any(), gomock.Any()).
			Return(&domain.RefreshSession{ID: "session-1", UserID: 42, Valid: true}, nil)
		f.tokens.EXPECT().SignRefreshToken(gomock.Any()).Return("refresh", int64(630720000000), nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/login", dto.LoginInput{Email: "a@x.com", Password: "correct123"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		cookie := refreshCookie(t, resp)
		require.NotNil(t, cookie)
		assert.Equal(t, "refresh", cookie.Value)
	})
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(ctrl)
	app := fiber.New()
	app.Get("/refresh", f.handler.Refresh)

	t.Run("missing cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/refresh", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired session", func(t *testing.T) {
		decoded := &service.RefreshClaims{
			AccessClaims: service.AccessClaims{UserID: 42, Username: "a@x.com", IP: "0.0.0.0", UserAgent: ""},
			SessionID:    "session-1",
			Valid:        true,
		}
		f.tokens.EXPECT().VerifyRefreshToken("old-token").Return(decoded, nil)
		f.store.EXPECT().FindByID(gomock.Any(), "session-1").
			Return(&domain.RefreshSession{ID: "session-1", UserID: 42, Valid: false}, nil)

		req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: "old-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rotates cookie", func(t *testing.T) {
		decoded := &service.RefreshClaims{
			AccessClaims: service.AccessClaims{UserID: 42, Username: "a@x.com", IP: "0.0.0.0", UserAgent: ""},
			SessionID:    "session-1",
			Valid:        true,
		}
		f.tokens.EXPECT().VerifyRefreshToken("old-token").Return(decoded, nil)
		f.tokens.EXPECT().SignAccessToken(gomock.Any()).Return("access", int64(1200000), nil)
		f.store.EXPECT().FindByID(gomock.Any(), "session-1").
			Return(&domain.RefreshSession{ID: "session-1", UserID: 42, IP: "0.0.0.0", UserAgent: "", Valid: true}, nil)
		f.tokens.EXPECT().SignRefreshToken(gomock.Any()).Return("new-token", int64(630720000000), nil)

		req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: "old-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		cookie := refreshCookie(t, resp)
		require.NotNil(t, cookie)
		assert.Equal(t, "new-token", cookie.Value)
	})
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(ctrl)
	app := fiber.New()
	app.Delete("/logout", f.handler.Logout)

	t.Run("success", func(t *testing.T) {
		decoded := &service.RefreshClaims{SessionID: "session-1", Valid: true}
		f.tokens.EXPECT().VerifyRefreshToken("valid-token").Return(decoded, nil)
		f.store.EXPECT().SetValid(gomock.Any(), "session-1", false).
			Return(&domain.RefreshSession{ID: "session-1", Valid: false}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: "valid-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		cookie := refreshCookie(t, resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.WithinDuration(t, time.Now().Add(constant.LogoutCookieTTLMs*time.Millisecond), cookie.Expires, 10*time.Second)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Logged out", body["message"])
	})

	// Fail-open: a bad token still gets its cookie cleared and a 200.
	t.Run("invalid token still clears cookie", func(t *testing.T) {
		f.tokens.EXPECT().VerifyRefreshToken("bad-token").Return(nil, errors.New("signature is invalid"))

		req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: "bad-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		cookie := refreshCookie(t, resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Logged out with error", body["message"])
	})

	t.Run("store failure still clears cookie", func(t *testing.T) {
		decoded := &service.RefreshClaims{SessionID: "session-1", Valid: true}
		f.tokens.EXPECT().VerifyRefreshToken("valid-token").Return(decoded, nil)
		f.store.EXPECT().SetValid(gomock.Any(), "session-1", false).Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: "valid-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotNil(t, refreshCookie(t, resp))
	})
}
