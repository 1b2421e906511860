package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// OrderRepository is the Firestore implementation of the order port.
// Orders live under users/{uid}/dates/{date}/orders.
type OrderRepository struct {
	client *firestore.Client
}

// NewOrderRepository creates a Firestore-backed order repository
func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) col(scope repository.Scope) *firestore.CollectionRef {
	return r.client.Collection(scopePath(scope, repository.CollectionOrders))
}

// Create persists a new order and returns the store-assigned id
func (r *OrderRepository) Create(ctx context.Context, scope repository.Scope, order *entity.Order) (string, error) {
	ref, _, err := r.col(scope).Add(ctx, order)
	if err != nil {
		return "", translateErr(err, "Order")
	}
	return ref.ID, nil
}

// Get fetches a single order; nil means the id is gone
func (r *OrderRepository) Get(ctx context.Context, scope repository.Scope, id string) (*entity.Order, error) {
	snap, err := r.col(scope).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, translateErr(err, "Order")
	}
	return docToOrder(snap)
}

// UpdateItems replaces the item list and total in one document write,
// so the persisted total can never drift from the persisted items
func (r *OrderRepository) UpdateItems(ctx context.Context, scope repository.Scope, id string, items []entity.LineItem, total money.Cents) error {
	if items == nil {
		items = []entity.LineItem{}
	}
	_, err := r.col(scope).Doc(id).Update(ctx, []firestore.Update{
		{Path: "items", Value: items},
		{Path: "total", Value: int64(total)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return translateErr(err, "Order")
}

// MarkPaid settles the tab: status, method, final total and the server
// close timestamp in a single write
func (r *OrderRepository) MarkPaid(ctx context.Context, scope repository.Scope, id string, method enum.PaymentMethod, total money.Cents) error {
	_, err := r.col(scope).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(enum.OrderStatusPaid)},
		{Path: "method", Value: string(method)},
		{Path: "total", Value: int64(total)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
		{Path: "closedAt", Value: firestore.ServerTimestamp},
	})
	return translateErr(err, "Order")
}

// Delete removes the order document. The existence precondition makes
// deleting an already-deleted id fail instead of silently succeeding.
func (r *OrderRepository) Delete(ctx context.Context, scope repository.Scope, id string) error {
	_, err := r.col(scope).Doc(id).Delete(ctx, firestore.Exists)
	return translateErr(err, "Order")
}

// Watch subscribes to live snapshots of orders with the given status.
// Each delivery carries the full current set; the goroutine exits when
// ctx is canceled or the stream fails.
func (r *OrderRepository) Watch(ctx context.Context, scope repository.Scope, st enum.OrderStatus) (<-chan repository.OrderSnapshot, error) {
	query := r.col(scope).Where("status", "==", string(st))
	snapshots := query.Snapshots(ctx)

	out := make(chan repository.OrderSnapshot)
	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			qs, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				select {
				case out <- repository.OrderSnapshot{Err: translateErr(err, "Order")}:
				case <-ctx.Done():
				}
				return
			}

			orders, err := readOrderDocs(qs.Documents)
			if err != nil {
				select {
				case out <- repository.OrderSnapshot{Err: err}:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case out <- repository.OrderSnapshot{Orders: orders}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func readOrderDocs(docs *firestore.DocumentIterator) ([]entity.Order, error) {
	var orders []entity.Order
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			return orders, nil
		}
		if err != nil {
			return nil, translateErr(err, "Order")
		}
		order, err := docToOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
}

func docToOrder(snap *firestore.DocumentSnapshot) (*entity.Order, error) {
	var order entity.Order
	if err := snap.DataTo(&order); err != nil {
		return nil, translateErr(err, "Order")
	}
	order.ID = snap.Ref.ID
	return &order, nil
}
