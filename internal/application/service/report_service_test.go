package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
)

func TestBuildReport(t *testing.T) {
	reports := NewReportService(10)
	now := time.Now()

	cash := enum.PaymentMethodCash
	card := enum.PaymentMethodCard
	paid := []entity.Order{
		{ID: "a", Status: enum.OrderStatusPaid, Total: 7000, Method: &cash, ClosedAt: &now},
		{ID: "b", Status: enum.OrderStatusPaid, Total: 4000, Method: &card, ClosedAt: &now},
	}
	expenses := []entity.Expense{
		{ID: "e1", Amount: 15000, Timestamp: now},
		{ID: "e2", Amount: 5000, Timestamp: now},
	}

	snap := reports.Build(paid, expenses)
	if snap.TotalSales != 11000 {
		t.Errorf("TotalSales = %d, want 11000", snap.TotalSales)
	}
	if snap.CashSales != 7000 || snap.CardSales != 4000 {
		t.Errorf("split = cash %d / card %d", snap.CashSales, snap.CardSales)
	}
	if snap.TotalExpenses != 20000 {
		t.Errorf("TotalExpenses = %d, want 20000", snap.TotalExpenses)
	}
	if snap.NetProfit != -9000 || !snap.Negative() {
		t.Errorf("NetProfit = %d, Negative = %v", snap.NetProfit, snap.Negative())
	}
}

func TestBuildReportEmpty(t *testing.T) {
	snap := NewReportService(10).Build(nil, nil)
	if snap.TotalSales != 0 || snap.TotalExpenses != 0 || snap.NetProfit != 0 || snap.Negative() {
		t.Errorf("empty report not zero: %+v", snap)
	}
}

func TestCombinedHistoryOrderAndBound(t *testing.T) {
	reports := NewReportService(10)
	base := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

	cash := enum.PaymentMethodCash
	var paid []entity.Order
	var expenses []entity.Expense
	for i := 0; i < 7; i++ {
		closedAt := base.Add(time.Duration(2*i) * time.Minute)
		m := cash
		paid = append(paid, entity.Order{
			ID:       fmt.Sprintf("order-%d", i),
			Status:   enum.OrderStatusPaid,
			Total:    1000,
			Method:   &m,
			ClosedAt: &closedAt,
		})
		expenses = append(expenses, entity.Expense{
			ID:        fmt.Sprintf("expense-%d", i),
			Amount:    500,
			Timestamp: base.Add(time.Duration(2*i+1) * time.Minute),
		})
	}

	history := reports.CombinedHistory(paid, expenses)
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}

	// Newest first, sales and expenses interleaved by timestamp.
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.After(history[i-1].Timestamp) {
			t.Fatalf("history out of order at %d: %v after %v", i, history[i].Timestamp, history[i-1].Timestamp)
		}
	}
	if history[0].Kind != HistoryExpense || history[0].ID != "expense-6" {
		t.Errorf("newest entry = %s %s", history[0].Kind, history[0].ID)
	}
	if history[1].Kind != HistorySale || history[1].ID != "order-6" {
		t.Errorf("second entry = %s %s", history[1].Kind, history[1].ID)
	}
}

func TestCombinedHistoryExpenseDetail(t *testing.T) {
	reports := NewReportService(10)
	now := time.Now()

	expenses := []entity.Expense{
		{ID: "e1", Amount: 500, Category: "Supplies", Description: "Napkins", Timestamp: now},
		{ID: "e2", Amount: 500, Category: "Supplies", Timestamp: now.Add(-time.Minute)},
	}

	history := reports.CombinedHistory(nil, expenses)
	if history[0].Detail != "Napkins" {
		t.Errorf("detail = %q, want description", history[0].Detail)
	}
	if history[1].Detail != "Supplies" {
		t.Errorf("detail = %q, want category fallback", history[1].Detail)
	}
}
