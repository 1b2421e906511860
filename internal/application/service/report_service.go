package service

import (
	"sort"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// ReportSnapshot holds the derived daily numbers. It is recomputed
// from the latest projection state on every change, never maintained
// incrementally, so it stays correct under any interleaving of the
// order and expense streams.
type ReportSnapshot struct {
	TotalSales    money.Cents
	CashSales     money.Cents
	CardSales     money.Cents
	TotalExpenses money.Cents
	NetProfit     money.Cents
}

// Negative reports whether the day is running at a loss, exposed
// separately so display styling does not have to inspect the number
func (r ReportSnapshot) Negative() bool {
	return r.NetProfit < 0
}

// HistoryKind tags a combined-history entry
type HistoryKind string

const (
	HistorySale    HistoryKind = "sale"
	HistoryExpense HistoryKind = "expense"
)

// HistoryEntry is one element of the merged sales+expenses timeline
type HistoryEntry struct {
	Kind      HistoryKind
	ID        string
	Title     string
	Detail    string
	Amount    money.Cents
	Method    *enum.PaymentMethod
	ItemCount int
	Timestamp time.Time
}

// ReportService derives the daily report and combined history from
// projection snapshots. It owns no entities, only the display bound
// for the history view.
type ReportService struct {
	historyLimit int
}

// NewReportService creates a report service with the given history
// display bound
func NewReportService(historyLimit int) *ReportService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ReportService{historyLimit: historyLimit}
}

// Build computes the report from the current paid orders and expenses
func (s *ReportService) Build(paid []entity.Order, expenses []entity.Expense) ReportSnapshot {
	var snap ReportSnapshot
	for _, order := range paid {
		snap.TotalSales += order.Total
		if order.Method == nil {
			continue
		}
		switch *order.Method {
		case enum.PaymentMethodCash:
			snap.CashSales += order.Total
		case enum.PaymentMethodCard:
			snap.CardSales += order.Total
		}
	}
	for _, expense := range expenses {
		snap.TotalExpenses += expense.Amount
	}
	snap.NetProfit = snap.TotalSales - snap.TotalExpenses
	return snap
}

// CombinedHistory merges paid orders and expenses into one timeline,
// newest first, truncated to the display bound. Orders sort by their
// closing time, expenses by their recording time.
func (s *ReportService) CombinedHistory(paid []entity.Order, expenses []entity.Expense) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(paid)+len(expenses))

	for _, order := range paid {
		var closedAt time.Time
		if order.ClosedAt != nil {
			closedAt = *order.ClosedAt
		}
		entries = append(entries, HistoryEntry{
			Kind:      HistorySale,
			ID:        order.ID,
			Title:     order.DisplayName(),
			Amount:    order.Total,
			Method:    order.Method,
			ItemCount: len(order.Items),
			Timestamp: closedAt,
		})
	}

	for _, expense := range expenses {
		detail := expense.Description
		if detail == "" {
			detail = expense.Category
		}
		entries = append(entries, HistoryEntry{
			Kind:      HistoryExpense,
			ID:        expense.ID,
			Title:     "Expense",
			Detail:    detail,
			Amount:    expense.Amount,
			Timestamp: expense.Timestamp,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > s.historyLimit {
		entries = entries[:s.historyLimit]
	}
	return entries
}
