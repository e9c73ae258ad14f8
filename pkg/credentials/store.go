// Package credentials persists the single ShipKit token.
//
// The workflow only ever sees the Store interface so tests and dry runs can
// swap the OS keychain for MemoryStore.
package credentials

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/zalando/go-keyring"
)

var storeLog = logger.New("credentials:store")

// Store keeps at most one token.
type Store interface {
	// Get returns the stored token. Any failure to read reports absence.
	Get() (string, bool)
	// Set replaces the stored token.
	Set(token string) error
	// Remove deletes the token and reports whether one existed.
	Remove() bool
}

// KeyringStore keeps the token in the OS credential store (macOS Keychain,
// Windows Credential Manager, Secret Service on Linux).
type KeyringStore struct {
	service string
	account string
}

// NewKeyringStore returns a store scoped to service.
func NewKeyringStore(service string) *KeyringStore {
	if strings.TrimSpace(service) == "" {
		service = constants.DefaultService
	}
	return &KeyringStore{service: service, account: constants.CredentialAccount}
}

// Get implements Store.
func (s *KeyringStore) Get() (string, bool) {
	token, err := keyring.Get(s.service, s.account)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			storeLog.Printf("Keyring read failed for %s: %v", s.service, err)
		}
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

// Set implements Store.
func (s *KeyringStore) Set(token string) error {
	if token == "" {
		return errors.New("credentials: refusing to store an empty token")
	}
	if err := keyring.Set(s.service, s.account, token); err != nil {
		return fmt.Errorf("credentials: write keyring %s: %w", s.service, err)
	}
	storeLog.Printf("Stored token under %s", s.service)
	return nil
}

// Remove implements Store.
func (s *KeyringStore) Remove() bool {
	if err := keyring.Delete(s.service, s.account); err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			storeLog.Printf("Keyring delete failed for %s: %v", s.service, err)
		}
		return false
	}
	storeLog.Printf("Removed token from %s", s.service)
	return true
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a store pre-loaded with token, which may be empty.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Get implements Store.
func (m *MemoryStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// Set implements Store.
func (m *MemoryStore) Set(token string) error {
	if token == "" {
		return errors.New("credentials: refusing to store an empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Remove implements Store.
func (m *MemoryStore) Remove() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	existed := m.token != ""
	m.token = ""
	return existed
}
