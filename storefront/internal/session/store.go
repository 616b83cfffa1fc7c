// Package session remembers who is signed in across restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
	"github.com/azaliaz/luxefurnish/storefront/internal/localstore"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
)

const storageKey = "user"

// Store holds at most one signed-in user and mirrors it to durable storage.
type Store struct {
	mu   sync.RWMutex
	kv   localstore.Store
	user *models.User
}

func New(kv localstore.Store) *Store {
	return &Store{kv: kv}
}

// Restore loads the persisted identity. Missing, unreadable or malformed
// records leave the store signed out; restore never fails.
func (s *Store) Restore(ctx context.Context) bool {
	log := logger.Get()
	data, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			log.Debug().Err(err).Msg("read stored session failed")
		}
		return false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil || user.Username == "" || user.Email == "" {
		log.Debug().Msg("stored session is malformed, ignoring it")
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return true
}

// Set makes user the active session. The in-memory session is updated even
// when persisting fails; the returned error only reports the latter.
func (s *Store) Set(ctx context.Context, user models.User) error {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear signs out. Safe to call without an active session.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, storageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Active() bool {
	_, ok := s.User()
	return ok
}
