// Package auth provides the credential store and public-path classifier
// used by the Basic authentication middleware.
package auth

import "crypto/subtle"

// Credentials is an immutable username → password store. It is built once
// at startup from configuration and shared read-only across requests,
// so no locking is needed.
type Credentials struct {
	users map[string]string
}

// NewCredentials constructs a Credentials store from the given pairs.
// The map is copied, so later mutation of the argument has no effect.
func NewCredentials(users map[string]string) *Credentials {
	copied := make(map[string]string, len(users))
	for username, password := range users {
		copied[username] = password
	}
	return &Credentials{users: copied}
}

// Count returns the number of registered accounts.
func (c *Credentials) Count() int {
	return len(c.users)
}

// Verify reports whether the supplied pair matches a registered account.
// The password comparison is constant time, so response latency does not
// reveal how much of a guessed password was correct.
func (c *Credentials) Verify(username, password string) bool {
	expected, ok := c.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
}
