package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists")
)

// OrderStore is the authoritative in-memory order collection. Orders are
// handed out by value so callers can never mutate the store behind its lock;
// listing preserves insertion order.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
	ids    []string

	timeNow func() time.Time
}

func New() *OrderStore {
	return &OrderStore{
		orders:  make(map[string]*model.Order),
		timeNow: time.Now,
	}
}

// Load bulk-inserts seed orders. Existing entries with the same id are an
// error; seed data is expected to land in an empty store.
func (s *OrderStore) Load(orders []model.Order) error {
	for _, o := range orders {
		if err := s.Create(o); err != nil {
			return fmt.Errorf("load order %s: %w", o.ID, err)
		}
	}
	return nil
}

func (s *OrderStore) Create(o model.Order) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return fmt.Errorf("%w: %s", ErrOrderExists, o.ID)
	}

	o.LastUpdatedAt = s.timeNow().UTC()
	if o.AdjustedEtaMinutes < o.BaseEtaMinutes {
		o.AdjustedEtaMinutes = o.BaseEtaMinutes
	}
	s.orders[o.ID] = &o
	s.ids = append(s.ids, o.ID)
	return nil
}

func (s *OrderStore) Get(id string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return *o, nil
}

func (s *OrderStore) List() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, *s.orders[id])
	}
	return out
}

func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *OrderStore) UpdateStatus(id string, status model.OrderStatus) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	o.Status = status
	o.LastUpdatedAt = s.timeNow().UTC()
	return nil
}

func (s *OrderStore) AssignDriver(id, driverName string) error {
	if driverName == "" {
		return fmt.Errorf("driver name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	o.DriverName = driverName
	o.LastUpdatedAt = s.timeNow().UTC()
	return nil
}
