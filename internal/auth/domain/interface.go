package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/hsbali/social-media-app-server/internal/auth/domain UserRepository,SessionStore

import "context"

// UserQueryOptions controls what a user lookup returns. The password hash is
// excluded unless explicitly requested.
type UserQueryOptions struct {
	WithPassword bool
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string, opts UserQueryOptions) (*User, error)
	GetByID(ctx context.Context, id int64, opts UserQueryOptions) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// SessionStore persists refresh sessions. Lookups return (nil, nil) when no
// row matches. Create must be atomic under concurrent calls for the same
// fingerprint: callers racing on a missing row converge on a single one.
type SessionStore interface {
	FindByID(ctx context.Context, id string) (*RefreshSession, error)
	FindByFingerprint(ctx context.Context, fp Fingerprint) (*RefreshSession, error)
	Create(ctx context.Context, fp Fingerprint) (*RefreshSession, error)
	SetValid(ctx context.Context, id string, valid bool) (*RefreshSession, error)
}
