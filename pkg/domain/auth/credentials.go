package auth

import "crypto/subtle"

//go:generate mockery --name=CredentialStore --dir=. --output=../../../mocks --filename=credential_store_mock.go --case=underscore --with-expecter

// CredentialStore validates login attempts. Implementations must be safe for
// concurrent use; the default store is immutable after construction.
type CredentialStore interface {
	Verify(username, password string) bool
}

type memoryCredentialStore struct {
	users map[string]string
}

// NewMemoryCredentialStore builds a fixed credential table from the configured
// username -> password map.
func NewMemoryCredentialStore(users map[string]string) CredentialStore {
	table := make(map[string]string, len(users))
	for username, password := range users {
		table[username] = password
	}
	return &memoryCredentialStore{users: table}
}

func (s *memoryCredentialStore) Verify(username, password string) bool {
	expected, ok := s.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
}
