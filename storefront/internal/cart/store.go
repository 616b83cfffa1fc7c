// Package cart holds the shopper's line items and the derived total.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
	"github.com/azaliaz/luxefurnish/storefront/internal/localstore"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
)

const (
	storageKey     = "cart"
	persistTimeout = 2 * time.Second
)

// Store is the single cart of a running client. Mutations are serialized
// and each one recomputes the total before the lock is released, so a
// reader never observes items and total out of step.
type Store struct {
	mu    sync.Mutex
	items []models.CartItem
	total float64
	kv    localstore.Store
}

// New returns an empty cart that lives only as long as the process.
func New() *Store {
	return &Store{}
}

// NewPersistent restores the cart from kv and writes it back after every
// mutation. A missing or malformed record yields an empty cart.
func NewPersistent(ctx context.Context, kv localstore.Store) *Store {
	s := &Store{kv: kv}
	s.restore(ctx)
	return s
}

// AddItem inserts item with quantity 1, or bumps the quantity of the line
// with the same id.
func (s *Store) AddItem(item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(item.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	s.commit()
}

// UpdateQuantity sets the quantity of a line exactly. A quantity below 1
// removes the line; an unknown id changes nothing.
func (s *Store) UpdateQuantity(id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.remove(id)
	} else if i := s.index(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
	s.commit()
}

func (s *Store) RemoveItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(id)
	s.commit()
}

// State returns a snapshot; callers may keep or modify it freely.
func (s *Store) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) index(id int64) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) remove(id int64) {
	if i := s.index(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Store) snapshot() models.CartState {
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return models.CartState{Items: items, Total: s.total}
}

// commit recomputes the total and persists; callers hold s.mu.
func (s *Store) commit() {
	s.total = Total(s.items)
	if s.kv == nil {
		return
	}
	log := logger.Get()
	data, err := json.Marshal(s.snapshot())
	if err != nil {
		log.Error().Err(err).Msg("marshal cart failed")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, storageKey, data); err != nil {
		log.Error().Err(err).Msg("persist cart failed")
	}
}

func (s *Store) restore(ctx context.Context) {
	log := logger.Get()
	data, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			log.Debug().Err(err).Msg("read stored cart failed")
		}
		return
	}
	var state models.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Debug().Err(err).Msg("stored cart is malformed, starting empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range state.Items {
		if item.Quantity < 1 || item.Price < 0 || s.index(item.ID) >= 0 {
			continue
		}
		s.items = append(s.items, item)
	}
	s.total = Total(s.items)
}

// Total is the sum of price * quantity over items.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
