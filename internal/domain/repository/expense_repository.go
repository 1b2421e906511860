package repository

import (
	"context"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
)

// ExpenseSnapshot is one full-state delivery from a live expense
// subscription
type ExpenseSnapshot struct {
	Expenses []entity.Expense
	Err      error
}

// ExpenseRepository defines the interface for expense persistence
// within a cutoff scope. Expenses are append-only; no update or delete
// exists.
type ExpenseRepository interface {
	// Create persists a new expense with a server-assigned timestamp
	// and returns its id
	Create(ctx context.Context, scope Scope, expense *entity.Expense) (string, error)
	// Watch subscribes to live full-snapshot deliveries of all
	// expenses in the scope. The stream closes when ctx is canceled.
	Watch(ctx context.Context, scope Scope) (<-chan ExpenseSnapshot, error)
}
