package service

import (
	"context"

	"github.com/hsbali/social-media-app-server/internal/auth/domain"
	autherror "github.com/hsbali/social-media-app-server/internal/errors"
)

// IssueInput identifies the session to resolve: by SessionID when a prior
// refresh token was presented, otherwise by the client fingerprint.
type IssueInput struct {
	SessionID string
	UserID    int64
	Email     string
	IP        string
	UserAgent string
}

// IssueOptions controls whether an invalidated session may be revived.
// Login and signup pass Revalidate; refresh must not.
type IssueOptions struct {
	Revalidate bool
}

// SessionService decides, for every token issuance, whether to reuse, revive,
// create, or reject the underlying refresh session.
type SessionService struct {
	store  domain.SessionStore
	tokens TokenSigner
}

func NewSessionService(store domain.SessionStore, tokens TokenSigner) *SessionService {
	return &SessionService{store: store, tokens: tokens}
}

// Issue resolves the refresh session for in and signs a refresh token bound
// to the surviving row.
//
// A valid session is reused as-is. An invalidated one is revived only on
// revalidating calls (login, signup), so a logged-out session cannot be
// reopened by replaying its old token through refresh; without Revalidate it
// fails with ErrSessionExpired. When no row exists a fresh valid one is
// created for the fingerprint.
func (s *SessionService) Issue(ctx context.Context, in IssueInput, opts IssueOptions) (string, int64, error) {
	fp := domain.Fingerprint{UserID: in.UserID, IP: in.IP, UserAgent: in.UserAgent}

	var (
		sess *domain.RefreshSession
		err  error
	)
	if in.SessionID != "" {
		sess, err = s.store.FindByID(ctx, in.SessionID)
	} else {
		sess, err = s.store.FindByFingerprint(ctx, fp)
	}
	if err != nil {
		return "", 0, err
	}

	if sess == nil {
		// Create is atomic per fingerprint; a concurrent creator may win,
		// in which case its row comes back here.
		if sess, err = s.store.Create(ctx, fp); err != nil {
			return "", 0, err
		}
	}

	if !sess.Valid && !opts.Revalidate {
		return "", 0, autherror.ErrSessionExpired
	}

	if !sess.Valid {
		if sess, err = s.store.SetValid(ctx, sess.ID, true); err != nil {
			return "", 0, err
		}
	}

	return s.tokens.SignRefreshToken(RefreshClaims{
		AccessClaims: AccessClaims{
			UserID:    in.UserID,
			Username:  in.Email,
			IP:        in.IP,
			UserAgent: in.UserAgent,
		},
		SessionID: sess.ID,
		Valid:     sess.Valid,
	})
}

// Invalidate flips the session behind a presented refresh token to invalid.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) error {
	_, err := s.store.SetValid(ctx, sessionID, false)
	return err
}
