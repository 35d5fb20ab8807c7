package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hsbali/social-media-app-server/internal/auth/domain"
)

const sessionColumns = `id, user_id, ip, user_agent, valid, created_at, updated_at`

type SessionStore struct {
	db DBTX
}

func NewSessionStore(db DBTX) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) FindByID(ctx context.Context, id string) (*domain.RefreshSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM refresh_sessions WHERE id = $1 LIMIT 1;`

	sess, err := scanSession(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find session by id: %w", err)
	}

	return sess, nil
}

func (s *SessionStore) FindByFingerprint(ctx context.Context, fp domain.Fingerprint) (*domain.RefreshSession, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM refresh_sessions
		WHERE user_id = $1 AND ip = $2 AND user_agent = $3
		LIMIT 1;`

	sess, err := scanSession(s.db.QueryRow(ctx, query, fp.UserID, fp.IP, fp.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("failed to find session by fingerprint: %w", err)
	}

	return sess, nil
}

// Create inserts a valid session row for fp, or returns the row that already
// owns the fingerprint. The ON CONFLICT clause makes this atomic: two callers
// racing on a missing fingerprint both get the single surviving row, with
// whatever valid flag it carries.
func (s *SessionStore) Create(ctx context.Context, fp domain.Fingerprint) (*domain.RefreshSession, error) {
	query := `
		INSERT INTO refresh_sessions (id, user_id, ip, user_agent, valid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, now(), now())
		ON CONFLICT (user_id, ip, user_agent)
		DO UPDATE SET updated_at = now()
		RETURNING ` + sessionColumns + `;`

	sess, err := scanSession(s.db.QueryRow(ctx, query, uuid.NewString(), fp.UserID, fp.IP, fp.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sess, nil
}

func (s *SessionStore) SetValid(ctx context.Context, id string, valid bool) (*domain.RefreshSession, error) {
	query := `
		UPDATE refresh_sessions SET valid = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + sessionColumns + `;`

	sess, err := scanSession(s.db.QueryRow(ctx, query, id, valid))
	if err != nil {
		return nil, fmt.Errorf("failed to update session validity: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s not found", id)
	}

	return sess, nil
}

func scanSession(row pgx.Row) (*domain.RefreshSession, error) {
	var sess domain.RefreshSession

	err := row.Scan(&sess.ID, &sess.UserID, &sess.IP, &sess.UserAgent,
		&sess.Valid, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &sess, nil
}
