package auth

import "errors"

var (
	// ErrNullAuthentication is returned when a token is requested without a completed login.
	ErrNullAuthentication = errors.New("null authentication")

	ErrEncryption      = errors.New("token encryption failed")
	ErrDecryption      = errors.New("token decryption failed")
	ErrMalformedToken  = errors.New("token is not valid transport encoding")
	ErrDeserialization = errors.New("token payload is malformed")
	ErrExpiredToken    = errors.New("token expired")
)

// IssuanceError reports that no token could be minted for a login.
type IssuanceError struct {
	Err error
}

func (e *IssuanceError) Error() string {
	return "issue token: " + e.Err.Error()
}

func (e *IssuanceError) Unwrap() error {
	return e.Err
}

// AuthorizationError is raised when a request reaches a protected operation
// without a sufficient principal.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError builds an AuthorizationError with the given message.
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}
