package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User identifies a verified account.
type User struct {
	ID       string
	Username string
}

// CredentialVerifier is the pluggable credential-checking capability the
// login flow consumes. The returned user is non-nil whenever the username is
// known, regardless of whether the secret matched.
type CredentialVerifier interface {
	Verify(username, secret string) (user *User, ok bool)
}

type staticUser struct {
	id   string
	hash []byte
}

// StaticVerifier verifies against a fixed set of accounts seeded at startup,
// with bcrypt-hashed secrets. It backs the demo deployment; production
// installs swap in their own CredentialVerifier.
type StaticVerifier struct {
	users map[string]staticUser
}

// NewStaticVerifier hashes the given username/secret pairs and returns a
// verifier over them. Usernames are normalized to lowercase.
func NewStaticVerifier(credentials map[string]string) (*StaticVerifier, error) {
	users := make(map[string]staticUser, len(credentials))
	for username, secret := range credentials {
		username = strings.ToLower(strings.TrimSpace(username))
		if username == "" || secret == "" {
			return nil, fmt.Errorf("credential entries require a username and a secret")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash secret for %q: %w", username, err)
		}
		users[username] = staticUser{id: uuid.New().String(), hash: hash}
	}
	return &StaticVerifier{users: users}, nil
}

// Verify implements CredentialVerifier.
func (v *StaticVerifier) Verify(username, secret string) (*User, bool) {
	entry, found := v.users[strings.ToLower(strings.TrimSpace(username))]
	if !found {
		return nil, false
	}
	user := &User{ID: entry.id, Username: strings.ToLower(strings.TrimSpace(username))}
	if bcrypt.CompareHashAndPassword(entry.hash, []byte(secret)) != nil {
		return user, false
	}
	return user, true
}
