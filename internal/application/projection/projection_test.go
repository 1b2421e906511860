package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition never held")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestOpenOrdersSortNewestFirst(t *testing.T) {
	p := NewOpenOrders()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan repository.OrderSnapshot, 1)
	go p.Run(ctx, stream)

	base := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	stream <- repository.OrderSnapshot{Orders: []entity.Order{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Minute)},
	}}

	waitFor(t, func() bool { return len(p.Snapshot()) == 3 })

	got := p.Snapshot()
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Errorf("order = %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestPaidOrdersSortByClosedAt(t *testing.T) {
	p := NewPaidOrders()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan repository.OrderSnapshot, 1)
	go p.Run(ctx, stream)

	base := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	early := base
	late := base.Add(time.Hour)
	stream <- repository.OrderSnapshot{Orders: []entity.Order{
		{ID: "early", ClosedAt: &early},
		{ID: "late", ClosedAt: &late},
		{ID: "unclosed"},
	}}

	waitFor(t, func() bool { return len(p.Snapshot()) == 3 })

	got := p.Snapshot()
	if got[0].ID != "late" || got[1].ID != "early" || got[2].ID != "unclosed" {
		t.Errorf("order = %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestOrderProjectionKeepsStateOnError(t *testing.T) {
	p := NewOpenOrders()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan repository.OrderSnapshot, 2)
	go p.Run(ctx, stream)

	stream <- repository.OrderSnapshot{Orders: []entity.Order{{ID: "a"}}}
	waitFor(t, func() bool { return p.Contains("a") })

	stream <- repository.OrderSnapshot{Err: errors.New("connection reset")}
	// The error must not wipe the view.
	time.Sleep(20 * time.Millisecond)
	if !p.Contains("a") {
		t.Error("subscription error wiped the last-known-good view")
	}
}

func TestOrderProjectionReplacesWholeView(t *testing.T) {
	p := NewOpenOrders()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan repository.OrderSnapshot, 2)
	go p.Run(ctx, stream)

	stream <- repository.OrderSnapshot{Orders: []entity.Order{{ID: "a"}, {ID: "b"}}}
	waitFor(t, func() bool { return len(p.Snapshot()) == 2 })

	stream <- repository.OrderSnapshot{Orders: []entity.Order{{ID: "b"}}}
	waitFor(t, func() bool { return len(p.Snapshot()) == 1 })

	if p.Contains("a") {
		t.Error("replaced view still contains a removed order")
	}
	if p.Find("b") == nil {
		t.Error("surviving order missing from view")
	}
}

func TestExpenseTotalCoversAllWhileRecentTruncates(t *testing.T) {
	p := NewExpenses()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan repository.ExpenseSnapshot, 1)
	go p.Run(ctx, stream)

	base := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	var expenses []entity.Expense
	for i := 0; i < 8; i++ {
		expenses = append(expenses, entity.Expense{
			ID:        string(rune('a' + i)),
			Amount:    1000,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	stream <- repository.ExpenseSnapshot{Expenses: expenses}

	waitFor(t, func() bool { return p.Total() == 8000 })

	recent := p.Recent(5)
	if len(recent) != 5 {
		t.Fatalf("Recent(5) returned %d entries", len(recent))
	}
	// Newest first, and the display window must not shrink the total.
	if recent[0].ID != "h" {
		t.Errorf("newest expense = %q", recent[0].ID)
	}
	if p.Total() != 8000 {
		t.Errorf("Total = %d after truncated display", p.Total())
	}
}

func TestExpenseRecentBounds(t *testing.T) {
	p := NewExpenses()
	p.apply([]entity.Expense{{ID: "a", Amount: 100}})

	if got := p.Recent(10); len(got) != 1 {
		t.Errorf("Recent(10) = %d entries", len(got))
	}
	if got := p.Recent(0); len(got) != 0 {
		t.Errorf("Recent(0) = %d entries", len(got))
	}
}
