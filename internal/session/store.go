package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scanbill_cli/internal/config"
	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

// Store persists the authenticated user record across runs. It is the only
// client-side state that survives a restart; everything else is refetched.
type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(cfg config.Config, logger *zap.Logger) *Store {
	return &Store{
		path:   cfg.SessionFile,
		logger: logger.Named("session"),
	}
}

// Load restores the persisted identity, if any. It runs synchronously at
// startup before the first routing decision. A missing or unreadable file
// means no identity: the caller falls back to a fresh login.
func (s *Store) Load() (*scanbill.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		s.logger.Warn("session file unreadable, requiring fresh login", zap.Error(err))
		return nil, nil
	}

	var user scanbill.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("session file corrupt, requiring fresh login", zap.Error(err))
		return nil, nil
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// Save replaces the persisted identity wholesale with the login response.
func (s *Store) Save(user scanbill.User) error {
	if user.ID == "" {
		return errors.New("refusing to persist user without id")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.logger.Info("session persisted",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// Clear removes the persisted identity. Clearing an already-absent session
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
