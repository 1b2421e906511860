package response

import (
	"time"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// LineItemResponse is one line on a tab
type LineItemResponse struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Display string  `json:"display"`
	AddedAt string  `json:"added_at,omitempty"`
}

// OrderResponse is a tab in a list view
type OrderResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Status    string             `json:"status"`
	Items     []LineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     float64            `json:"total"`
	Display   string             `json:"display"`
	Method    string             `json:"method,omitempty"`
	CreatedAt string             `json:"created_at,omitempty"`
	ClosedAt  string             `json:"closed_at,omitempty"`
}

// ActiveOrderResponse is the tab currently being edited
type ActiveOrderResponse struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Items   []LineItemResponse `json:"items"`
	Total   float64            `json:"total"`
	Display string             `json:"display"`
}

// ExpenseResponse is one recorded money outflow
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Display     string  `json:"display"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

// ReportResponse is the daily summary; every figure is a pure
// aggregate over the current business date
type ReportResponse struct {
	TotalSales        float64 `json:"total_sales"`
	TotalSalesText    string  `json:"total_sales_text"`
	CashSales         float64 `json:"cash_sales"`
	CashSalesText     string  `json:"cash_sales_text"`
	CardSales         float64 `json:"card_sales"`
	CardSalesText     string  `json:"card_sales_text"`
	TotalExpenses     float64 `json:"total_expenses"`
	TotalExpensesText string  `json:"total_expenses_text"`
	NetProfit         float64 `json:"net_profit"`
	NetProfitText     string  `json:"net_profit_text"`
	Negative          bool    `json:"negative"`
}

// HistoryEntryResponse is one row of the combined sales and expenses
// history, newest first
type HistoryEntryResponse struct {
	Kind      string  `json:"kind"`
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Detail    string  `json:"detail,omitempty"`
	Amount    float64 `json:"amount"`
	Display   string  `json:"display"`
	Method    string  `json:"method,omitempty"`
	ItemCount int     `json:"item_count,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// TillResponse is the full till state for one render
type TillResponse struct {
	Date           string                 `json:"date"`
	Active         *ActiveOrderResponse   `json:"active_order"`
	OpenOrders     []OrderResponse        `json:"open_orders"`
	Report         ReportResponse         `json:"report"`
	RecentExpenses []ExpenseResponse      `json:"recent_expenses"`
	History        []HistoryEntryResponse `json:"history"`
}

// NewTillResponse shapes a till snapshot for the wire
func NewTillResponse(snap *service.TillSnapshot) *TillResponse {
	out := &TillResponse{
		Date:           snap.Scope.Date,
		OpenOrders:     NewOrderListResponse(snap.OpenOrders),
		Report:         NewReportResponse(snap.Report),
		RecentExpenses: NewExpenseListResponse(snap.RecentExpenses),
		History:        NewHistoryResponse(snap.History),
	}
	if snap.Active != nil {
		out.Active = &ActiveOrderResponse{
			ID:      snap.Active.ID,
			Name:    snap.Active.Name,
			Items:   newLineItemResponses(snap.Active.Items),
			Total:   snap.Active.Total.Decimal(),
			Display: snap.Active.Total.Format(),
		}
	}
	return out
}

// NewOrderResponse shapes one order
func NewOrderResponse(order entity.Order) OrderResponse {
	out := OrderResponse{
		ID:        order.ID,
		Name:      order.DisplayName(),
		Status:    string(order.Status),
		Items:     newLineItemResponses(order.Items),
		ItemCount: len(order.Items),
		Total:     order.Total.Decimal(),
		Display:   order.Total.Format(),
		CreatedAt: formatTime(&order.CreatedAt),
		ClosedAt:  formatTime(order.ClosedAt),
	}
	if order.Method != nil {
		out.Method = string(*order.Method)
	}
	return out
}

// NewOrderListResponse shapes a list of orders
func NewOrderListResponse(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}

// NewExpenseResponse shapes one expense
func NewExpenseResponse(expense entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount.Decimal(),
		Display:     expense.Amount.Format(),
		Category:    expense.Category,
		Description: expense.Description,
		Timestamp:   formatTime(&expense.Timestamp),
	}
}

// NewExpenseListResponse shapes a list of expenses
func NewExpenseListResponse(expenses []entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		out = append(out, NewExpenseResponse(expense))
	}
	return out
}

// NewReportResponse shapes the daily report
func NewReportResponse(report service.ReportSnapshot) ReportResponse {
	return ReportResponse{
		TotalSales:        report.TotalSales.Decimal(),
		TotalSalesText:    report.TotalSales.Format(),
		CashSales:         report.CashSales.Decimal(),
		CashSalesText:     report.CashSales.Format(),
		CardSales:         report.CardSales.Decimal(),
		CardSalesText:     report.CardSales.Format(),
		TotalExpenses:     report.TotalExpenses.Decimal(),
		TotalExpensesText: report.TotalExpenses.Format(),
		NetProfit:         report.NetProfit.Decimal(),
		NetProfitText:     report.NetProfit.Format(),
		Negative:          report.Negative(),
	}
}

// NewHistoryResponse shapes the combined history feed
func NewHistoryResponse(entries []service.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		row := HistoryEntryResponse{
			Kind:      string(entry.Kind),
			ID:        entry.ID,
			Title:     entry.Title,
			Detail:    entry.Detail,
			Amount:    entry.Amount.Decimal(),
			Display:   entry.Amount.Format(),
			ItemCount: entry.ItemCount,
			Timestamp: formatTime(&entry.Timestamp),
		}
		if entry.Method != nil {
			row.Method = string(*entry.Method)
		}
		out = append(out, row)
	}
	return out
}

func newLineItemResponses(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemResponse{
			Name:    item.Name,
			Price:   item.Price.Decimal(),
			Display: item.Price.Format(),
			AddedAt: formatTime(&item.AddedAt),
		})
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return money.FormatTimestamp(*t)
}
