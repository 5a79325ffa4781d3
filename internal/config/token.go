package config

import (
	"errors"
	"os"
	"strings"
)

// TokenStore persists the single authentication token string.
type TokenStore struct {
	cfg *Config
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with mode 0600.
func (s *TokenStore) Save(token string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.cfg.TokenPath(), []byte(token+"\n"), 0600)
}

// Clear removes the token file. A missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.cfg.TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
