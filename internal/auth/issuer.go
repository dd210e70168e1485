package auth

import (
	"encoding/json"
	"time"
)

// Authentication is the outcome of a completed credential check.
type Authentication struct {
	Username string
	Roles    []string
}

// TokenResponse is the login response body.
type TokenResponse struct {
	Token string `json:"token"`
}

// Issuer mints encrypted tokens for authenticated users.
type Issuer struct {
	codec Codec
	now   func() time.Time
}

// NewIssuer builds an issuer. A nil clock defaults to time.Now.
func NewIssuer(codec Codec, clock func() time.Time) *Issuer {
	if clock == nil {
		clock = time.Now
	}
	return &Issuer{codec: codec, now: clock}
}

// Issue returns the transport-encoded token for auth.
func (i *Issuer) Issue(auth *Authentication) (string, error) {
	if auth == nil || auth.Username == "" {
		return "", &IssuanceError{Err: ErrNullAuthentication}
	}

	payload := NewPayload(auth.Username, auth.Roles, i.now())
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", &IssuanceError{Err: err}
	}

	ciphertext, err := i.codec.Encrypt(plaintext)
	if err != nil {
		return "", &IssuanceError{Err: err}
	}
	return EncodeForTransport(ciphertext), nil
}

// IssueResponse returns the JSON envelope {"token": "..."} for auth.
func (i *Issuer) IssueResponse(auth *Authentication) ([]byte, error) {
	token, err := i.Issue(auth)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(TokenResponse{Token: token})
	if err != nil {
		return nil, &IssuanceError{Err: err}
	}
	return body, nil
}
