package orders

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrOrderNotFound = errors.New("order not found")

// InMemoryRepository keeps orders for the life of the process.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]Order),
	}
}

func (r *InMemoryRepository) SaveOrder(_ context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order
	return nil
}

func (r *InMemoryRepository) GetOrder(_ context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// ListOrders returns orders newest first.
func (r *InMemoryRepository) ListOrders(_ context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
