package cloud

import "errors"

var (
	// ErrNotConfigured means DATABASE_URL is unset; the app runs local-only.
	ErrNotConfigured = errors.New("cloud backend is not configured")
	// ErrNoSession means the operation needs a signed-in user.
	ErrNoSession = errors.New("no active session")

	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
