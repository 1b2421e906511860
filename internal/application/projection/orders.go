package projection

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
)

// OrderProjection is a live read-only view over one order status
// within the current cutoff scope. Every delivered snapshot replaces
// the whole derived list; nothing is patched incrementally, so a
// missed or reordered event can never leave the view drifted.
type OrderProjection struct {
	mu     sync.RWMutex
	orders []entity.Order

	less     func(a, b entity.Order) bool
	onChange func()
}

// NewOpenOrders creates the open-tabs view, most recently created
// first
func NewOpenOrders() *OrderProjection {
	return &OrderProjection{
		less: func(a, b entity.Order) bool {
			return a.CreatedAt.After(b.CreatedAt)
		},
	}
}

// NewPaidOrders creates the settled-tabs view, most recently closed
// first
func NewPaidOrders() *OrderProjection {
	return &OrderProjection{
		less: func(a, b entity.Order) bool {
			at := timeOrZero(a.ClosedAt)
			bt := timeOrZero(b.ClosedAt)
			return at.After(bt)
		},
	}
}

// SetOnChange registers a callback invoked after every applied
// snapshot. Must be set before Run starts.
func (p *OrderProjection) SetOnChange(fn func()) {
	p.onChange = fn
}

// Run consumes the subscription stream until it closes. A stream
// error is logged and the view keeps its last-known-good state rather
// than flashing empty during transient connectivity loss; there is no
// automatic retry.
func (p *OrderProjection) Run(ctx context.Context, stream <-chan repository.OrderSnapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-stream:
			if !ok {
				return
			}
			if snap.Err != nil {
				log.Printf("order projection: subscription error: %v", snap.Err)
				continue
			}
			p.apply(snap.Orders)
		}
	}
}

func (p *OrderProjection) apply(orders []entity.Order) {
	sorted := make([]entity.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return p.less(sorted[i], sorted[j])
	})

	p.mu.Lock()
	p.orders = sorted
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange()
	}
}

// Snapshot returns a copy of the current derived list
func (p *OrderProjection) Snapshot() []entity.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]entity.Order, len(p.orders))
	copy(out, p.orders)
	return out
}

// Contains reports whether an order id is present in the view
func (p *OrderProjection) Contains(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, o := range p.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Find returns the order with the given id, or nil
func (p *OrderProjection) Find(id string) *entity.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.orders {
		if p.orders[i].ID == id {
			order := p.orders[i]
			return &order
		}
	}
	return nil
}
