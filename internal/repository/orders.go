package repository

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/entity"
)

// OrderStore abstracts order-record persistence: a key-value store keyed by
// order id with recency-ordered listing. Backends swap without touching the
// enrichment engine or the orchestrator.
type OrderStore interface {
	// Get returns the record for id, or common.ErrNotFound.
	Get(id uuid.UUID) (*entity.Order, error)
	// List returns all records ordered by ProcessedAt descending.
	List() ([]*entity.Order, error)
	// Upsert inserts or wholesale-replaces the record for order.OrderID.
	Upsert(order *entity.Order) error
	// Clear removes every record (full-replace batch semantics).
	Clear() error
	Close() error
}

// MemoryStore is a thread-safe in-memory OrderStore, used in tests and as the
// reference implementation of the listing contract.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*entity.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[uuid.UUID]*entity.Order)}
}

func (s *MemoryStore) Get(id uuid.UUID) (*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *MemoryStore) List() ([]*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		cp := *o
		out = append(out, &cp)
	}
	sortByProcessedAtDesc(out)
	return out, nil
}

func (s *MemoryStore) Upsert(order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	s.orders[order.OrderID] = &cp
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[uuid.UUID]*entity.Order)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func sortByProcessedAtDesc(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Meta.ProcessedAt.After(orders[j].Meta.ProcessedAt)
	})
}
