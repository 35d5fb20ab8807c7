package domain

import "time"

// Fingerprint keys a refresh session when no session id is known yet: one
// continuous login on one (user, ip, user-agent) combination.
type Fingerprint struct {
	UserID    int64
	IP        string
	UserAgent string
}

// RefreshSession is the server-tracked record behind a refresh token. Rows
// are never deleted; the valid flag is the only expiry. Invalidated rows stay
// in the store until revived by a fresh login from the same fingerprint.
type RefreshSession struct {
	ID        string
	UserID    int64
	IP        string
	UserAgent string
	Valid     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *RefreshSession) Fingerprint() Fingerprint {
	return Fingerprint{UserID: s.UserID, IP: s.IP, UserAgent: s.UserAgent}
}
