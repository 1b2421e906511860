package projection

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// ExpenseProjection is the live expense ledger for the current cutoff
// scope: the full running total plus a reverse-chronological list.
// Display truncation happens in Recent; the total always covers every
// expense in scope.
type ExpenseProjection struct {
	mu       sync.RWMutex
	expenses []entity.Expense
	total    money.Cents

	onChange func()
}

// NewExpenses creates an empty expense ledger view
func NewExpenses() *ExpenseProjection {
	return &ExpenseProjection{}
}

// SetOnChange registers a callback invoked after every applied
// snapshot. Must be set before Run starts.
func (p *ExpenseProjection) SetOnChange(fn func()) {
	p.onChange = fn
}

// Run consumes the subscription stream until it closes. Errors leave
// the last-known-good state in place, same policy as the order views.
func (p *ExpenseProjection) Run(ctx context.Context, stream <-chan repository.ExpenseSnapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-stream:
			if !ok {
				return
			}
			if snap.Err != nil {
				log.Printf("expense projection: subscription error: %v", snap.Err)
				continue
			}
			p.apply(snap.Expenses)
		}
	}
}

func (p *ExpenseProjection) apply(expenses []entity.Expense) {
	sorted := make([]entity.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	var total money.Cents
	for _, e := range sorted {
		total += e.Amount
	}

	p.mu.Lock()
	p.expenses = sorted
	p.total = total
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange()
	}
}

// Snapshot returns a copy of all expenses in scope, newest first
func (p *ExpenseProjection) Snapshot() []entity.Expense {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]entity.Expense, len(p.expenses))
	copy(out, p.expenses)
	return out
}

// Recent returns at most limit expenses for display
func (p *ExpenseProjection) Recent(limit int) []entity.Expense {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if limit < 0 {
		limit = 0
	}
	if limit > len(p.expenses) {
		limit = len(p.expenses)
	}
	out := make([]entity.Expense, limit)
	copy(out, p.expenses[:limit])
	return out
}

// Total returns the running total over every expense in scope
func (p *ExpenseProjection) Total() money.Cents {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
