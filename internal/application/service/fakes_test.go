package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/apperror"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// fakeOrderRepo is an in-memory OrderRepository. Failure injection
// fields make unhappy store paths testable; the watch channels let
// tests push subscription snapshots by hand.
type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*entity.Order

	createErr   error
	updateErr   error
	markPaidErr error
	deleteErr   error
	watchErr    error

	updateCalls   int
	markPaidCalls int
	deleteCalls   int

	// When payGate is set, MarkPaid signals payEntered and then
	// blocks until payGate closes.
	payGate    chan struct{}
	payEntered chan struct{}

	watchChans map[string]chan repository.OrderSnapshot
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[string]*entity.Order),
		watchChans: make(map[string]chan repository.OrderSnapshot),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, scope repository.Scope, order *entity.Order) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	id := fmt.Sprintf("order-%d", f.seq)
	stored := *order
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.orders[id] = &stored
	return id, nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, scope repository.Scope, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateItems(ctx context.Context, scope repository.Scope, id string, items []entity.LineItem, total money.Cents) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	order, ok := f.orders[id]
	if !ok {
		return apperror.NewNotFoundError("Order")
	}
	order.Items = append([]entity.LineItem(nil), items...)
	order.Total = total
	return nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, scope repository.Scope, id string, method enum.PaymentMethod, total money.Cents) error {
	f.mu.Lock()
	f.markPaidCalls++
	gate := f.payGate
	entered := f.payEntered
	f.mu.Unlock()

	if gate != nil {
		close(entered)
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	order, ok := f.orders[id]
	if !ok {
		return apperror.NewNotFoundError("Order")
	}
	now := time.Now()
	order.Status = enum.OrderStatusPaid
	order.Method = &method
	order.Total = total
	order.ClosedAt = &now
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.orders[id]; !ok {
		return apperror.NewNotFoundError("Order")
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) Watch(ctx context.Context, scope repository.Scope, status enum.OrderStatus) (<-chan repository.OrderSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	ch := make(chan repository.OrderSnapshot, 8)
	f.watchChans[scope.Date+"/"+string(status)] = ch
	return ch, nil
}

// push delivers a subscription snapshot as the store would
func (f *fakeOrderRepo) push(date string, status enum.OrderStatus, orders []entity.Order) {
	f.mu.Lock()
	ch := f.watchChans[date+"/"+string(status)]
	f.mu.Unlock()
	ch <- repository.OrderSnapshot{Orders: orders}
}

func (f *fakeOrderRepo) stored(id string) *entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil
	}
	cp := *order
	return &cp
}

// fakeExpenseRepo is an in-memory ExpenseRepository
type fakeExpenseRepo struct {
	mu       sync.Mutex
	seq      int
	expenses map[string]*entity.Expense

	createErr   error
	createCalls int

	watchChans map[string]chan repository.ExpenseSnapshot
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{
		expenses:   make(map[string]*entity.Expense),
		watchChans: make(map[string]chan repository.ExpenseSnapshot),
	}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, scope repository.Scope, expense *entity.Expense) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	id := fmt.Sprintf("expense-%d", f.seq)
	stored := *expense
	stored.ID = id
	stored.Timestamp = time.Now()
	f.expenses[id] = &stored
	return id, nil
}

func (f *fakeExpenseRepo) Watch(ctx context.Context, scope repository.Scope) (<-chan repository.ExpenseSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan repository.ExpenseSnapshot, 8)
	f.watchChans[scope.Date] = ch
	return ch, nil
}

func (f *fakeExpenseRepo) push(date string, expenses []entity.Expense) {
	f.mu.Lock()
	ch := f.watchChans[date]
	f.mu.Unlock()
	ch <- repository.ExpenseSnapshot{Expenses: expenses}
}
