package auth

import (
	"sort"
	"time"
)

// ExpiryWindow is how long a token stays valid after issuance.
const ExpiryWindow = 30 * time.Minute

// Payload is the plaintext carried inside an encrypted token.
type Payload struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	LoginTime int64    `json:"loginTime"`
}

// NewPayload builds a payload stamped with issuedAt. Roles are deduplicated
// and sorted so equal role sets encode identically.
func NewPayload(username string, roles []string, issuedAt time.Time) Payload {
	return Payload{
		Username:  username,
		Roles:     normalizeRoles(roles),
		LoginTime: issuedAt.UnixMilli(),
	}
}

// IssuedAt returns the login time as a time.Time.
func (p Payload) IssuedAt() time.Time {
	return time.UnixMilli(p.LoginTime)
}

// Expired reports whether now is past the validity window.
func (p Payload) Expired(now time.Time) bool {
	return now.UnixMilli() > p.LoginTime+ExpiryWindow.Milliseconds()
}

func normalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
