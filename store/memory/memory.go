// Package memory provides an in-memory Store implementation (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	salespeople []rappel.Salesperson
	commissions []rappel.Commission
	tiers       []rappel.RappelTier
	method      rappel.Method
}

// New returns a store seeded with the built-in defaults: empty collections,
// the starter tier ladder, and the rolling method.
func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

func (s *Store) resetLocked() {
	s.salespeople = nil
	s.commissions = nil
	s.tiers = rappel.DefaultTiers()
	s.method = rappel.DefaultMethod
}

func (s *Store) LoadSalespeople(_ context.Context) ([]rappel.Salesperson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]rappel.Salesperson(nil), s.salespeople...), nil
}

func (s *Store) ReplaceSalespeople(_ context.Context, salespeople []rappel.Salesperson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salespeople = append([]rappel.Salesperson(nil), salespeople...)
	return nil
}

func (s *Store) LoadCommissions(_ context.Context) ([]rappel.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]rappel.Commission(nil), s.commissions...), nil
}

func (s *Store) ReplaceCommissions(_ context.Context, commissions []rappel.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commissions = append([]rappel.Commission(nil), commissions...)
	return nil
}

func (s *Store) LoadTiers(_ context.Context) ([]rappel.RappelTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]rappel.RappelTier(nil), s.tiers...), nil
}

func (s *Store) ReplaceTiers(_ context.Context, tiers []rappel.RappelTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = append([]rappel.RappelTier(nil), tiers...)
	return nil
}

func (s *Store) LoadMethod(_ context.Context) (rappel.Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.method.Valid() {
		return rappel.DefaultMethod, nil
	}
	return s.method, nil
}

func (s *Store) SaveMethod(_ context.Context, method rappel.Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = method
	return nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}
