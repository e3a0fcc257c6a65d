// Package keystore keeps the AI API key in the operating system keyring.
package keystore

import (
	"errors"
	"regexp"

	"github.com/zalando/go-keyring"

	"github.com/tk-425/caller-cli/internal/apperr"
)

const (
	DefaultService = "caller-cli"
	DefaultAccount = "gemini"

	minKeyLen = 20
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store reads and writes one secret identified by service and account.
type Store struct {
	Service string
	Account string
}

// New returns a Store, falling back to the default service and account for
// empty arguments.
func New(service, account string) *Store {
	if service == "" {
		service = DefaultService
	}
	if account == "" {
		account = DefaultAccount
	}
	return &Store{Service: service, Account: account}
}

// Get returns the saved key. found is false when nothing is saved.
func (s *Store) Get() (key string, found bool, err error) {
	key, err = keyring.Get(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperr.Wrap(apperr.KeyManagement, err, "Failed to read API key from keychain")
	}
	return key, true, nil
}

// Set validates and saves key.
func (s *Store) Set(key string) error {
	if err := ValidateKeyFormat(key); err != nil {
		return err
	}
	if err := keyring.Set(s.Service, s.Account, key); err != nil {
		return apperr.Wrap(apperr.KeyManagement, err, "Failed to save API key to keychain")
	}
	return nil
}

// Delete removes the saved key. A missing key is NotFound.
func (s *Store) Delete() error {
	err := keyring.Delete(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return apperr.New(apperr.NotFound, "No API key found in keychain.")
	}
	if err != nil {
		return apperr.Wrap(apperr.KeyManagement, err, "Failed to delete API key from keychain")
	}
	return nil
}

// ValidateKeyFormat accepts keys of at least 20 characters made of letters,
// digits, '_' and '-'.
func ValidateKeyFormat(key string) error {
	if key == "" {
		return apperr.New(apperr.EmptyInput, "API key cannot be empty.")
	}
	if len(key) < minKeyLen || !keyPattern.MatchString(key) {
		return apperr.New(apperr.InvalidInput, "Invalid API key format.")
	}
	return nil
}
