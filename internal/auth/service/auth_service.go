package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hsbali/social-media-app-server/internal/auth/domain"
	"github.com/hsbali/social-media-app-server/internal/auth/dto"
	autherror "github.com/hsbali/social-media-app-server/internal/errors"
)

// AuthService composes the token signer, the session reconciliation logic and
// the user repository into the four user-facing flows.
type AuthService struct {
	users    domain.UserRepository
	sessions *SessionService
	tokens   TokenSigner
}

func NewAuthService(users domain.UserRepository, sessions *SessionService, tokens TokenSigner) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, input dto.SignupInput, client dto.ClientInfo) (*dto.AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, autherror.ErrIncorrectConfirmPassword
	}

	existing, err := s.users.GetByEmail(ctx, input.Email, domain.UserQueryOptions{})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user, client)
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput, client dto.ClientInfo) (*dto.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email, domain.UserQueryOptions{WithPassword: true})
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredential
	}

	return s.issueTokenPair(ctx, user, client)
}

// Refresh exchanges a presented refresh token for a fresh token pair bound to
// the same session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, client dto.ClientInfo) (*dto.RefreshResult, error) {
	decoded, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// A token presented from a different client than it was issued to is
	// rejected before any session lookup.
	if decoded.IP != client.IP || decoded.UserAgent != client.UserAgent {
		return nil, autherror.ErrInvalidSessionRequest
	}

	// Revalidate is off: refresh can never revive an invalidated session.
	// Reconcile before signing anything, so a rejected session never gets
	// a freshly minted access token on the error path.
	newRefreshToken, refreshExpiresIn, err := s.sessions.Issue(ctx, IssueInput{
		SessionID: decoded.SessionID,
		UserID:    decoded.UserID,
		Email:     decoded.Username,
		IP:        client.IP,
		UserAgent: client.UserAgent,
	}, IssueOptions{Revalidate: false})
	if err != nil {
		return nil, err
	}

	accessToken, accessExpiresIn, err := s.tokens.SignAccessToken(AccessClaims{
		UserID:    decoded.UserID,
		Username:  decoded.Username,
		IP:        client.IP,
		UserAgent: client.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResult{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresIn,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout invalidates the session behind the presented refresh token. Callers
// must treat failure as "client copy discarded, server state unknown"; the
// handler clears the cookie either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	decoded, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	return s.sessions.Invalidate(ctx, decoded.SessionID)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User, client dto.ClientInfo) (*dto.AuthResult, error) {
	accessToken, accessExpiresIn, err := s.tokens.SignAccessToken(AccessClaims{
		UserID:    user.ID,
		Username:  user.Email,
		IP:        client.IP,
		UserAgent: client.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresIn, err := s.sessions.Issue(ctx, IssueInput{
		UserID:    user.ID,
		Email:     user.Email,
		IP:        client.IP,
		UserAgent: client.UserAgent,
	}, IssueOptions{Revalidate: true})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User:                  dto.NewUserOutput(user),
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}
