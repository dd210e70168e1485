package auth_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dns-auth/token-service/internal/auth"
)

var (
	testKey   = []byte("0123456789abcdef")
	issueTime = time.UnixMilli(1_700_000_000_000)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newCodec(t *testing.T, mode auth.CipherMode) auth.Codec {
	t.Helper()
	codec, err := auth.NewCodec(mode, testKey)
	require.NoError(t, err)
	return codec
}

func TestPayload_Expired(t *testing.T) {
	p := auth.NewPayload("admin", []string{"ADMIN"}, issueTime)

	assert.False(t, p.Expired(issueTime))
	assert.False(t, p.Expired(issueTime.Add(auth.ExpiryWindow)))
	assert.True(t, p.Expired(issueTime.Add(auth.ExpiryWindow+time.Millisecond)))
	assert.Equal(t, issueTime, p.IssuedAt())
}

func TestPayload_NormalizesRoles(t *testing.T) {
	p := auth.NewPayload("u", []string{"USER", "ADMIN", "USER", ""}, issueTime)
	assert.Equal(t, []string{"ADMIN", "USER"}, p.Roles)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"u","roles":["ADMIN","USER"],"loginTime":1700000000000}`, string(raw))
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	for _, mode := range []auth.CipherMode{auth.CipherModeGCM, auth.CipherModeECB} {
		t.Run(string(mode), func(t *testing.T) {
			codec := newCodec(t, mode)
			issuer := auth.NewIssuer(codec, fixedClock(issueTime))
			authenticator := auth.NewAuthenticator(codec, fixedClock(issueTime.Add(time.Minute)))

			token, err := issuer.Issue(&auth.Authentication{Username: "alice", Roles: []string{"USER", "ADMIN"}})
			require.NoError(t, err)

			outcome := authenticator.Authenticate(token)
			require.True(t, outcome.Valid())
			assert.NoError(t, outcome.Reason)
			assert.Equal(t, "alice", outcome.Principal.Username)
			assert.ElementsMatch(t, []string{"ADMIN", "USER"}, outcome.Principal.Roles)
		})
	}
}

func TestAuthenticate_ExpiryBoundary(t *testing.T) {
	codec := newCodec(t, auth.CipherModeGCM)
	token, err := auth.NewIssuer(codec, fixedClock(issueTime)).
		Issue(&auth.Authentication{Username: "admin", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		elapsed time.Duration
		valid   bool
	}{
		{name: "just_inside_window", elapsed: 1_799_999 * time.Millisecond, valid: true},
		{name: "at_window_edge", elapsed: 1_800_000 * time.Millisecond, valid: true},
		{name: "just_past_window", elapsed: 1_800_001 * time.Millisecond, valid: false},
		{name: "thirty_one_minutes", elapsed: 31 * time.Minute, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := auth.NewAuthenticator(codec, fixedClock(issueTime.Add(tt.elapsed))).Authenticate(token)
			assert.Equal(t, tt.valid, outcome.Valid())
			if !tt.valid {
				assert.ErrorIs(t, outcome.Reason, auth.ErrExpiredToken)
				assert.Nil(t, outcome.Principal)
			}
		})
	}
}

func TestAuthenticate_TamperedTokenIsAnonymous(t *testing.T) {
	codec := newCodec(t, auth.CipherModeGCM)
	token, err := auth.NewIssuer(codec, fixedClock(issueTime)).
		Issue(&auth.Authentication{Username: "admin", Roles: []string{"ADMIN"}})
	require.NoError(t, err)
	authenticator := auth.NewAuthenticator(codec, fixedClock(issueTime))

	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] ^= 0x01

		var outcome auth.Outcome
		require.NotPanics(t, func() { outcome = authenticator.Authenticate(string(tampered)) })
		assert.False(t, outcome.Valid(), "flipped byte %d", i)
		assert.Error(t, outcome.Reason)
	}
}

func TestAuthenticate_MalformedInputs(t *testing.T) {
	codec := newCodec(t, auth.CipherModeECB)
	authenticator := auth.NewAuthenticator(codec, fixedClock(issueTime))

	encrypt := func(plaintext string) string {
		ciphertext, err := codec.Encrypt([]byte(plaintext))
		require.NoError(t, err)
		return auth.EncodeForTransport(ciphertext)
	}

	tests := []struct {
		name   string
		token  string
		reason error
	}{
		{name: "not_base64", token: "%%%", reason: auth.ErrMalformedToken},
		{name: "truncated_ciphertext", token: auth.EncodeForTransport([]byte("12345")), reason: auth.ErrDecryption},
		{name: "not_json", token: encrypt("hello"), reason: auth.ErrDeserialization},
		{name: "missing_username", token: encrypt(`{"roles":["ADMIN"],"loginTime":1700000000000}`), reason: auth.ErrDeserialization},
		{name: "missing_login_time", token: encrypt(`{"username":"admin","roles":["ADMIN"]}`), reason: auth.ErrDeserialization},
		{name: "wrong_types", token: encrypt(`{"username":1,"roles":"ADMIN","loginTime":"x"}`), reason: auth.ErrDeserialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := authenticator.Authenticate(tt.token)
			assert.False(t, outcome.Valid())
			assert.ErrorIs(t, outcome.Reason, tt.reason)
		})
	}
}

func TestAuthenticate_AcceptsLegacyPayloadFields(t *testing.T) {
	codec := newCodec(t, auth.CipherModeECB)
	ciphertext, err := codec.Encrypt([]byte(
		`{"username":"admin","roles":["ADMIN"],"loginTime":1700000000000,"expired":false,"expiryTimeInMileSecond":1800000}`,
	))
	require.NoError(t, err)

	outcome := auth.NewAuthenticator(codec, fixedClock(issueTime)).Authenticate(auth.EncodeForTransport(ciphertext))
	require.True(t, outcome.Valid())
	assert.Equal(t, "admin", outcome.Principal.Username)
}

func TestAuthenticate_WrongKeyIsAnonymous(t *testing.T) {
	token, err := auth.NewIssuer(newCodec(t, auth.CipherModeGCM), fixedClock(issueTime)).
		Issue(&auth.Authentication{Username: "admin"})
	require.NoError(t, err)

	other, err := auth.NewCodec(auth.CipherModeGCM, []byte("fedcba9876543210"))
	require.NoError(t, err)

	outcome := auth.NewAuthenticator(other, fixedClock(issueTime)).Authenticate(token)
	assert.False(t, outcome.Valid())
	assert.ErrorIs(t, outcome.Reason, auth.ErrDecryption)
}

func TestIssue_WithoutAuthenticationFails(t *testing.T) {
	issuer := auth.NewIssuer(newCodec(t, auth.CipherModeGCM), nil)

	for _, a := range []*auth.Authentication{nil, {Roles: []string{"ADMIN"}}} {
		token, err := issuer.Issue(a)
		assert.Empty(t, token)

		var issuanceErr *auth.IssuanceError
		require.ErrorAs(t, err, &issuanceErr)
		assert.ErrorIs(t, err, auth.ErrNullAuthentication)
	}

	body, err := issuer.IssueResponse(nil)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, auth.ErrNullAuthentication)
}

type failingCodec struct{}

func (failingCodec) Encrypt([]byte) ([]byte, error) { return nil, auth.ErrEncryption }
func (failingCodec) Decrypt([]byte) ([]byte, error) { return nil, auth.ErrDecryption }

func TestIssue_EncryptionFailureIsIssuanceError(t *testing.T) {
	token, err := auth.NewIssuer(failingCodec{}, nil).Issue(&auth.Authentication{Username: "admin"})
	assert.Empty(t, token)

	var issuanceErr *auth.IssuanceError
	require.True(t, errors.As(err, &issuanceErr))
	assert.ErrorIs(t, err, auth.ErrEncryption)
}

func TestIssueResponse_Envelope(t *testing.T) {
	codec := newCodec(t, auth.CipherModeGCM)
	body, err := auth.NewIssuer(codec, fixedClock(issueTime)).
		IssueResponse(&auth.Authentication{Username: "admin", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp, 1)
	require.NotEmpty(t, resp["token"])

	outcome := auth.NewAuthenticator(codec, fixedClock(issueTime)).Authenticate(resp["token"])
	require.True(t, outcome.Valid())
	assert.Equal(t, []string{"ADMIN"}, outcome.Principal.Roles)
}

func TestIssue_ConcurrentTokensDoNotMix(t *testing.T) {
	codec := newCodec(t, auth.CipherModeGCM)
	issuer := auth.NewIssuer(codec, nil)
	authenticator := auth.NewAuthenticator(codec, nil)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			username := fmt.Sprintf("user-%d", i)
			role := fmt.Sprintf("ROLE_%d", i)

			token, err := issuer.Issue(&auth.Authentication{Username: username, Roles: []string{role}})
			if err != nil {
				errs <- err
				return
			}
			outcome := authenticator.Authenticate(token)
			if !outcome.Valid() || outcome.Principal.Username != username ||
				len(outcome.Principal.Roles) != 1 || outcome.Principal.Roles[0] != role {
				errs <- fmt.Errorf("token for %s decoded as %+v", username, outcome.Principal)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &auth.Principal{Username: "admin", Roles: []string{"ADMIN"}}
	assert.True(t, p.HasRole("ADMIN"))
	assert.False(t, p.HasRole("USER"))

	var nilPrincipal *auth.Principal
	assert.False(t, nilPrincipal.HasRole("ADMIN"))
}
