package repository

import (
	"context"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// OrderSnapshot is one full-state delivery from a live order
// subscription. Every delivery carries the complete current set for
// the watched status, never a diff.
type OrderSnapshot struct {
	Orders []entity.Order
	Err    error
}

// OrderRepository defines the interface for order persistence within a
// cutoff scope
type OrderRepository interface {
	// Create persists a new order and returns its assigned id
	Create(ctx context.Context, scope Scope, order *entity.Order) (string, error)
	// Get fetches a single order; nil result means not found
	Get(ctx context.Context, scope Scope, id string) (*entity.Order, error)
	// UpdateItems replaces the item list and total in one atomic write
	UpdateItems(ctx context.Context, scope Scope, id string, items []entity.LineItem, total money.Cents) error
	// MarkPaid transitions the order to Paid, stamping method, final
	// total and the server close timestamp
	MarkPaid(ctx context.Context, scope Scope, id string, method enum.PaymentMethod, total money.Cents) error
	// Delete removes the order outright; deleting an id that no longer
	// exists fails rather than silently succeeding
	Delete(ctx context.Context, scope Scope, id string) error
	// Watch subscribes to live full-snapshot deliveries for orders of
	// the given status. The stream closes when ctx is canceled.
	Watch(ctx context.Context, scope Scope, status enum.OrderStatus) (<-chan OrderSnapshot, error)
}
