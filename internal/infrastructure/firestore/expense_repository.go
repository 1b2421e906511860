package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
)

// ExpenseRepository is the Firestore implementation of the expense
// port. Expenses live under users/{uid}/dates/{date}/expenses.
type ExpenseRepository struct {
	client *firestore.Client
}

// NewExpenseRepository creates a Firestore-backed expense repository
func NewExpenseRepository(client *firestore.Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

func (r *ExpenseRepository) col(scope repository.Scope) *firestore.CollectionRef {
	return r.client.Collection(scopePath(scope, repository.CollectionExpenses))
}

// Create persists a new expense; the timestamp is assigned by the
// server, not the till
func (r *ExpenseRepository) Create(ctx context.Context, scope repository.Scope, expense *entity.Expense) (string, error) {
	ref, _, err := r.col(scope).Add(ctx, expense)
	if err != nil {
		return "", translateErr(err, "Expense")
	}
	return ref.ID, nil
}

// Watch subscribes to live snapshots of all expenses in the scope
func (r *ExpenseRepository) Watch(ctx context.Context, scope repository.Scope) (<-chan repository.ExpenseSnapshot, error) {
	snapshots := r.col(scope).Snapshots(ctx)

	out := make(chan repository.ExpenseSnapshot)
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
				case out <- repository.ExpenseSnapshot{Err: translateErr(err, "Expense")}:
				case <-ctx.Done():
				}
				return
			}

			expenses, err := readExpenseDocs(qs.Documents)
			if err != nil {
				select {
				case out <- repository.ExpenseSnapshot{Err: err}:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case out <- repository.ExpenseSnapshot{Expenses: expenses}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func readExpenseDocs(docs *firestore.DocumentIterator) ([]entity.Expense, error) {
	var expenses []entity.Expense
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			return expenses, nil
		}
		if err != nil {
			return nil, translateErr(err, "Expense")
		}
		var expense entity.Expense
		if err := snap.DataTo(&expense); err != nil {
			return nil, translateErr(err, "Expense")
		}
		expense.ID = snap.Ref.ID
		expenses = append(expenses, expense)
	}
}
