package errors

import (
	"errors"
)

var (
	ErrIncorrectConfirmPassword = errors.New("passwords do not match")
	ErrUserAlreadyExists        = errors.New("user with this email already exists, try logging in")
	ErrInvalidCredential        = errors.New("invalid email or password")
	ErrInvalidSessionRequest    = errors.New("session request does not match the client it was issued to")
	ErrSessionExpired           = errors.New("session expired, please log in again")
	ErrAccessDenied             = errors.New("access denied")
)
