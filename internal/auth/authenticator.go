package auth

import (
	"encoding/json"
	"fmt"
	"time"
)

// Principal is the identity bound to an authenticated request.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole reports whether the principal was granted role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Outcome is the result of validating a token. Reason is set only when
// Principal is nil and must not be shown to the caller.
type Outcome struct {
	Principal *Principal
	Reason    error
}

// Valid reports whether the token produced a principal.
func (o Outcome) Valid() bool {
	return o.Principal != nil
}

func invalid(reason error) Outcome {
	return Outcome{Reason: reason}
}

// Authenticator turns inbound tokens back into principals.
type Authenticator struct {
	codec Codec
	now   func() time.Time
}

// NewAuthenticator builds an authenticator. A nil clock defaults to time.Now.
func NewAuthenticator(codec Codec, clock func() time.Time) *Authenticator {
	if clock == nil {
		clock = time.Now
	}
	return &Authenticator{codec: codec, now: clock}
}

// Authenticate validates token. Every failure, expiry included, yields an
// invalid outcome rather than an error.
func (a *Authenticator) Authenticate(token string) Outcome {
	ciphertext, err := DecodeFromTransport(token)
	if err != nil {
		return invalid(err)
	}

	plaintext, err := a.codec.Decrypt(ciphertext)
	if err != nil {
		return invalid(err)
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return invalid(fmt.Errorf("%w: %v", ErrDeserialization, err))
	}
	if payload.Username == "" || payload.LoginTime <= 0 {
		return invalid(fmt.Errorf("%w: missing username or login time", ErrDeserialization))
	}

	if payload.Expired(a.now()) {
		return invalid(ErrExpiredToken)
	}

	return Outcome{Principal: &Principal{
		Username: payload.Username,
		Roles:    normalizeRoles(payload.Roles),
	}}
}
