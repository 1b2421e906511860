package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/apperror"
)

func TestOpenScopesToToday(t *testing.T) {
	_, sessions, _, _ := newTestTill(t)

	session, err := sessions.Get(testUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	scope := session.Scope()
	if scope.OperatorID != testUID {
		t.Errorf("scope operator = %q", scope.OperatorID)
	}
	if !repository.ValidCutoffDate(scope.Date) {
		t.Errorf("scope date %q is not a cutoff date", scope.Date)
	}
}

func TestGetWithoutSession(t *testing.T) {
	sessions := NewSessionManager(newFakeOrderRepo(), newFakeExpenseRepo())

	if _, err := sessions.Get("nobody"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestCloseForgetsSession(t *testing.T) {
	_, sessions, _, _ := newTestTill(t)

	sessions.Close(testUID)
	if _, err := sessions.Get(testUID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after close, got %v", err)
	}
}

func TestOpenIsIdempotentPerOperator(t *testing.T) {
	_, sessions, _, _ := newTestTill(t)

	operator := &entity.Operator{UID: testUID, Email: "op@example.com"}
	first, _ := sessions.Get(testUID)
	again, err := sessions.Open(context.Background(), operator)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first != again {
		t.Error("reopening replaced the live session")
	}
}

func TestChangeCutoffRejectsMalformedDate(t *testing.T) {
	till, sessions, _, _ := newTestTill(t)
	ctx := context.Background()

	till.CreateOrder(ctx, testUID, "Mesa 3")
	session, _ := sessions.Get(testUID)
	before := session.Scope()

	for _, date := range []string{"tomorrow", "2024-3-07", "2024-13-45", ""} {
		err := sessions.ChangeCutoff(ctx, testUID, date)
		if !apperror.IsKind(err, apperror.KindValidation) {
			t.Errorf("date %q: expected validation error, got %v", date, err)
		}
	}

	// A rejected cutoff leaves everything untouched.
	if session.Scope() != before {
		t.Errorf("scope changed: %+v -> %+v", before, session.Scope())
	}
	if session.ActiveOrderID() == "" {
		t.Error("active tab cleared by a rejected cutoff")
	}
}

func TestChangeCutoffSameDateIsNoop(t *testing.T) {
	till, sessions, _, _ := newTestTill(t)
	ctx := context.Background()

	till.CreateOrder(ctx, testUID, "Mesa 3")
	session, _ := sessions.Get(testUID)

	if err := sessions.ChangeCutoff(ctx, testUID, session.Scope().Date); err != nil {
		t.Fatalf("same-date cutoff: %v", err)
	}
	if session.ActiveOrderID() == "" {
		t.Error("same-date cutoff cleared the active tab")
	}
}

func TestChangeCutoffRescopes(t *testing.T) {
	till, sessions, orderRepo, expenseRepo := newTestTill(t)
	ctx := context.Background()

	till.CreateOrder(ctx, testUID, "Mesa 3")
	session, _ := sessions.Get(testUID)

	if err := sessions.ChangeCutoff(ctx, testUID, "2024-03-07"); err != nil {
		t.Fatalf("ChangeCutoff: %v", err)
	}

	scope := session.Scope()
	if scope.Date != "2024-03-07" {
		t.Errorf("scope date = %q", scope.Date)
	}
	if session.ActiveOrderID() != "" {
		t.Error("active tab survived the cutoff change")
	}

	// New subscriptions must exist under the new date.
	orderRepo.mu.Lock()
	_, hasOpen := orderRepo.watchChans["2024-03-07/Open"]
	_, hasPaid := orderRepo.watchChans["2024-03-07/Paid"]
	orderRepo.mu.Unlock()
	expenseRepo.mu.Lock()
	_, hasExpenses := expenseRepo.watchChans["2024-03-07"]
	expenseRepo.mu.Unlock()
	if !hasOpen || !hasPaid || !hasExpenses {
		t.Errorf("missing subscriptions after cutoff: open=%v paid=%v expenses=%v", hasOpen, hasPaid, hasExpenses)
	}
}

func TestChangeCutoffKeepsScopeOnSubscribeFailure(t *testing.T) {
	till, sessions, orderRepo, _ := newTestTill(t)
	ctx := context.Background()

	order, _ := till.CreateOrder(ctx, testUID, "Mesa 3")
	session, _ := sessions.Get(testUID)
	before := session.Scope()

	orderRepo.mu.Lock()
	orderRepo.watchErr = errors.New("stream down")
	orderRepo.mu.Unlock()

	if err := sessions.ChangeCutoff(ctx, testUID, "2024-03-07"); !apperror.IsKind(err, apperror.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if got := session.Scope(); got != before {
		t.Errorf("scope moved to %+v after a failed rescope", got)
	}
	if session.ActiveOrderID() != order.ID {
		t.Error("active tab lost on a failed rescope")
	}

	// The previous subscriptions must still feed the views.
	orderRepo.push(before.Date, enum.OrderStatusPaid, []entity.Order{
		{ID: "order-x", Status: enum.OrderStatusPaid, Total: 1200},
	})
	deadline := time.After(2 * time.Second)
	for {
		paid, err := till.PaidOrders(testUID)
		if err != nil {
			t.Fatalf("PaidOrders: %v", err)
		}
		if len(paid) == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("old subscriptions went dark after a failed rescope")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestActiveTabClearsWhenGoneFromOpenView(t *testing.T) {
	till, sessions, orderRepo, _ := newTestTill(t)
	ctx := context.Background()

	order, _ := till.CreateOrder(ctx, testUID, "Mesa 3")
	session, _ := sessions.Get(testUID)
	date := session.Scope().Date

	orderRepo.push(date, enum.OrderStatusOpen, []entity.Order{
		{ID: order.ID, Name: "Mesa 3", Status: enum.OrderStatusOpen},
	})
	// The tab settles elsewhere: the next open snapshot no longer has it.
	orderRepo.push(date, enum.OrderStatusOpen, nil)

	deadline := time.After(2 * time.Second)
	for session.ActiveOrderID() != "" {
		select {
		case <-deadline:
			t.Fatal("active selection survived the tab leaving the open view")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := till.AddItem(ctx, testUID, "Taco", 700); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error after the selection cleared, got %v", err)
	}
}
