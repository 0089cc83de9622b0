// Package credentials stores the Sonarr API key in the operating system keychain.
package credentials

// file: internal/credentials/keyring.go

import (
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/zalando/go-keyring"
)

// KeyringService is the service name used for every keyring entry.
const KeyringService = "SonarrMCP"

// KeyringStore reads and writes API keys in the OS keyring, one entry per Sonarr host.
type KeyringStore struct {
	logger logging.Logger
}

// NewKeyringStore creates a new keyring-backed store.
func NewKeyringStore(logger logging.Logger) *KeyringStore {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &KeyringStore{
		logger: logger.WithField("component", "keyring_store"),
	}
}

// account derives the keyring account name from a base URL. Keys are scoped to
// the host so two Sonarr instances can coexist.
func account(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid Sonarr URL %q", baseURL)
	}
	if u.Host == "" {
		return "", errors.Newf("Sonarr URL %q has no host", baseURL)
	}
	return u.Host, nil
}

// Lookup returns the stored key for baseURL. A missing entry is not an error.
func (s *KeyringStore) Lookup(baseURL string) (string, error) {
	user, err := account(baseURL)
	if err != nil {
		return "", err
	}
	key, err := keyring.Get(KeyringService, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			s.logger.Debug("No API key stored in system keyring.", "account", user)
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read API key from system keyring")
	}
	s.logger.Debug("Retrieved API key from system keyring.", "account", user)
	return key, nil
}

// Save stores key for baseURL, replacing any existing entry.
func (s *KeyringStore) Save(baseURL, key string) error {
	if key == "" {
		return errors.New("cannot save empty API key to keyring")
	}
	user, err := account(baseURL)
	if err != nil {
		return err
	}
	if err := keyring.Set(KeyringService, user, key); err != nil {
		s.logger.Error("keyring.Set operation failed.", "error", err)
		return errors.Wrap(err, "failed to save API key to system keyring")
	}
	s.logger.Info("API key saved to system keyring.", "account", user)
	return nil
}

// Delete removes the stored key for baseURL. Deleting a missing entry succeeds.
func (s *KeyringStore) Delete(baseURL string) error {
	user, err := account(baseURL)
	if err != nil {
		return err
	}
	if err := keyring.Delete(KeyringService, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			s.logger.Debug("No API key to delete - system keyring entry not found.", "account", user)
			return nil
		}
		return errors.Wrap(err, "failed to delete API key from system keyring")
	}
	s.logger.Info("API key deleted from system keyring.", "account", user)
	return nil
}
