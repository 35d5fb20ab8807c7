package service

//go:generate mockgen -destination=../../mocks/mock_token_signer.go -package=mocks github.com/hsbali/social-media-app-server/internal/auth/service TokenSigner

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims asserts an authenticated user for one short-lived window. The
// client ip and user-agent are carried so refresh tokens (which extend these
// claims) stay bound to the client they were issued to.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// RefreshClaims is a point-in-time copy of a refresh session row. The store
// is re-read on every refresh; staleness of Valid here is expected.
type RefreshClaims struct {
	AccessClaims
	SessionID string `json:"sessionId"`
	Valid     bool   `json:"valid"`
}

type TokenSigner interface {
	SignAccessToken(claims AccessClaims) (string, int64, error)
	SignRefreshToken(claims RefreshClaims) (string, int64, error)
	VerifyAccessToken(tokenString string) (*AccessClaims, error)
	VerifyRefreshToken(tokenString string) (*RefreshClaims, error)
}

// TokenService signs and verifies the two token kinds against two independent
// secrets, so an access token can never be replayed as a refresh token or
// vice versa.
type TokenService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTLSec, refreshTTLSec int) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     time.Duration(accessTTLSec) * time.Second,
		refreshTTL:    time.Duration(refreshTTLSec) * time.Second,
	}
}

// SignAccessToken returns the signed token and its lifetime in milliseconds.
func (ts *TokenService) SignAccessToken(claims AccessClaims) (string, int64, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ts.accessTTL))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.accessSecret))
	if err != nil {
		return "", 0, err
	}

	return token, ts.accessTTL.Milliseconds(), nil
}

func (ts *TokenService) SignRefreshToken(claims RefreshClaims) (string, int64, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ts.refreshTTL))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.refreshSecret))
	if err != nil {
		return "", 0, err
	}

	return token, ts.refreshTTL.Milliseconds(), nil
}

func (ts *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := ts.verify(tokenString, claims, ts.accessSecret); err != nil {
		return nil, err
	}

	return claims, nil
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := ts.verify(tokenString, claims, ts.refreshSecret); err != nil {
		return nil, err
	}

	return claims, nil
}

func (ts *TokenService) verify(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	return nil
}
