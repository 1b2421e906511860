package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/apperror"
	"github.com/lromero86/tacopos-api/pkg/money"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// TillService implements the order aggregate and the expense ledger
// on top of the session context. Item mutations are optimistic: the
// local copy changes first, the store write follows, and a failed
// write triggers the inverse local patch so the visible total never
// diverges from the persisted one for longer than one failed round
// trip.
type TillService struct {
	sessions    *SessionManager
	orderRepo   repository.OrderRepository
	expenseRepo repository.ExpenseRepository
	reports     *ReportService
	confirmer   Confirmer

	expenseDisplayLimit int
}

// NewTillService creates a till service
func NewTillService(
	sessions *SessionManager,
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
	reports *ReportService,
	confirmer Confirmer,
	expenseDisplayLimit int,
) *TillService {
	if expenseDisplayLimit <= 0 {
		expenseDisplayLimit = 5
	}
	return &TillService{
		sessions:            sessions,
		orderRepo:           orderRepo,
		expenseRepo:         expenseRepo,
		reports:             reports,
		confirmer:           confirmer,
		expenseDisplayLimit: expenseDisplayLimit,
	}
}

// CreateOrder opens a new empty tab and makes it the active one. A
// blank name gets a generated display code.
func (s *TillService) CreateOrder(ctx context.Context, uid, name string) (*entity.Order, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = utils.NewDisplayCode()
	}

	order := &entity.Order{
		Name:   name,
		Status: enum.OrderStatusOpen,
		Items:  []entity.LineItem{},
		Total:  0,
	}

	session.mu.Lock()
	scope := session.scope
	session.mu.Unlock()

	id, err := s.orderRepo.Create(ctx, scope, order)
	if err != nil {
		// No local state changed yet, nothing to compensate.
		return nil, err
	}
	order.ID = id

	session.mu.Lock()
	session.activeOrderID = id
	session.activeName = name
	session.activeItems = nil
	session.mu.Unlock()
	session.notifyWatchers()

	return order, nil
}

// SelectOrder makes an existing open tab the active one and loads its
// items as the local editing copy
func (s *TillService) SelectOrder(ctx context.Context, uid, orderID string) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	session.mu.Lock()
	scope := session.scope
	order := session.openOrders.Find(orderID)
	session.mu.Unlock()

	if order == nil {
		// The projection may not have caught up with a fresh write,
		// fall back to the store before rejecting.
		order, err = s.orderRepo.Get(ctx, scope, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
	}
	if !order.IsOpen() {
		return apperror.NewBadRequestError("Only open tabs can be selected")
	}

	items := make([]entity.LineItem, len(order.Items))
	copy(items, order.Items)

	session.mu.Lock()
	session.activeOrderID = orderID
	session.activeName = order.DisplayName()
	session.activeItems = items
	session.mu.Unlock()
	session.notifyWatchers()
	return nil
}

// AddItem appends a line item to the active tab and persists the full
// item list and total as one write
func (s *TillService) AddItem(ctx context.Context, uid, name string, price money.Cents) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.NewValidationError("Item name is required")
	}
	if price < 0 {
		return apperror.NewValidationError("Item price cannot be negative")
	}

	item := entity.LineItem{Name: name, Price: price, AddedAt: time.Now()}

	session.mu.Lock()
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("Open or select a tab first")
	}
	session.activeItems = append(session.activeItems, item)
	orderID := session.activeOrderID
	scope := session.scope
	items, total := snapshotItems(session.activeItems)
	session.mu.Unlock()

	if err := s.orderRepo.UpdateItems(ctx, scope, orderID, items, total); err != nil {
		// Compensate: take the appended item back out.
		session.mu.Lock()
		session.activeItems = removeItemValue(session.activeItems, item)
		session.mu.Unlock()
		return err
	}

	session.notifyWatchers()
	return nil
}

// RemoveItem deletes one line item from the active tab by position.
// An out-of-range index fails validation before anything is touched
// and without any store call.
func (s *TillService) RemoveItem(ctx context.Context, uid string, index int, c Confirmation) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("No active tab")
	}
	if index < 0 || index >= len(session.activeItems) {
		session.mu.Unlock()
		return apperror.NewValidationError("No such item on the tab")
	}
	operator := session.operator
	session.mu.Unlock()

	if err := s.confirmer.Confirm(ctx, operator, "remove item", c); err != nil {
		return err
	}

	session.mu.Lock()
	// Revalidate: the tab may have changed while confirming.
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("No active tab")
	}
	if index < 0 || index >= len(session.activeItems) {
		session.mu.Unlock()
		return apperror.NewValidationError("No such item on the tab")
	}
	removed := session.activeItems[index]
	session.activeItems = append(session.activeItems[:index], session.activeItems[index+1:]...)
	orderID := session.activeOrderID
	scope := session.scope
	items, total := snapshotItems(session.activeItems)
	session.mu.Unlock()

	if err := s.orderRepo.UpdateItems(ctx, scope, orderID, items, total); err != nil {
		// Compensate: put the item back where it was.
		session.mu.Lock()
		session.activeItems = insertItemAt(session.activeItems, removed, index)
		session.mu.Unlock()
		return err
	}

	session.notifyWatchers()
	return nil
}

// ClearItems empties the active tab. There is no rollback here beyond
// reporting the error: the local copy is already cleared, an accepted
// inconsistency window.
func (s *TillService) ClearItems(ctx context.Context, uid string, c Confirmation) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("No active tab to clear")
	}
	operator := session.operator
	session.mu.Unlock()

	if err := s.confirmer.Confirm(ctx, operator, "clear items", c); err != nil {
		return err
	}

	session.mu.Lock()
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("No active tab to clear")
	}
	session.activeItems = nil
	orderID := session.activeOrderID
	scope := session.scope
	session.mu.Unlock()

	if err := s.orderRepo.UpdateItems(ctx, scope, orderID, []entity.LineItem{}, 0); err != nil {
		log.Printf("till %s: clear items not persisted for order %s: %v", uid, orderID, err)
		return err
	}

	session.notifyWatchers()
	return nil
}

// Pay settles the active tab. Only one payment may be in flight for
// the whole session at a time, whatever the order, so a rapid double
// submission can never charge twice. The guard is released on every
// exit path.
func (s *TillService) Pay(ctx context.Context, uid string, method enum.PaymentMethod, c Confirmation) (*entity.Order, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}

	if !method.Valid() {
		return nil, apperror.NewValidationError("Unknown payment method")
	}

	session.mu.Lock()
	if session.activeOrderID == "" || len(session.activeItems) == 0 {
		session.mu.Unlock()
		return nil, apperror.NewBadRequestError("No active tab, or the tab is empty")
	}
	if session.paying {
		session.mu.Unlock()
		return nil, apperror.ErrPaymentInFlight
	}
	operator := session.operator
	session.mu.Unlock()

	if err := s.confirmer.Confirm(ctx, operator, "pay order", c); err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.activeOrderID == "" || len(session.activeItems) == 0 {
		session.mu.Unlock()
		return nil, apperror.NewBadRequestError("No active tab, or the tab is empty")
	}
	if session.paying {
		session.mu.Unlock()
		return nil, apperror.ErrPaymentInFlight
	}
	session.paying = true
	orderID := session.activeOrderID
	orderName := session.activeName
	scope := session.scope
	items, total := snapshotItems(session.activeItems)
	session.mu.Unlock()

	err = s.orderRepo.MarkPaid(ctx, scope, orderID, method, total)

	session.mu.Lock()
	session.paying = false
	if err == nil && session.activeOrderID == orderID {
		session.clearActiveLocked()
	}
	session.mu.Unlock()

	if err != nil {
		// Status stays Open and the guard is released, a retry is fine.
		return nil, err
	}

	session.notifyWatchers()
	// ClosedAt stays unset here: the store assigns it server-side and
	// the paid-orders view delivers the authoritative record.
	return &entity.Order{
		ID:     orderID,
		Name:   orderName,
		Status: enum.OrderStatusPaid,
		Items:  items,
		Total:  total,
		Method: &method,
	}, nil
}

// Cancel deletes the active tab outright. This is not a status
// transition: the record ceases to exist and vanishes from all
// reporting.
func (s *TillService) Cancel(ctx context.Context, uid string, c Confirmation) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.activeOrderID == "" {
		session.mu.Unlock()
		return apperror.NewBadRequestError("No active tab to cancel")
	}
	operator := session.operator
	orderID := session.activeOrderID
	session.mu.Unlock()

	if err := s.confirmer.Confirm(ctx, operator, "cancel order", c); err != nil {
		return err
	}

	return s.deleteOrder(ctx, session, orderID)
}

// DeleteOrder removes any tab by id, active or not, open or paid
func (s *TillService) DeleteOrder(ctx context.Context, uid, orderID string, c Confirmation) error {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return err
	}

	if err := s.confirmer.Confirm(ctx, session.Operator(), "delete order", c); err != nil {
		return err
	}

	return s.deleteOrder(ctx, session, orderID)
}

func (s *TillService) deleteOrder(ctx context.Context, session *Session, orderID string) error {
	session.mu.Lock()
	scope := session.scope
	session.mu.Unlock()

	if err := s.orderRepo.Delete(ctx, scope, orderID); err != nil {
		return err
	}

	session.mu.Lock()
	if session.activeOrderID == orderID {
		session.clearActiveLocked()
	}
	session.mu.Unlock()
	session.notifyWatchers()
	return nil
}

// RecordExpense persists an immutable expense with a server-assigned
// timestamp. Nothing is inserted locally before the store confirms.
func (s *TillService) RecordExpense(ctx context.Context, uid string, amount money.Cents, category, description string) (*entity.Expense, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperror.NewValidationError("Enter a valid expense amount")
	}

	expense := &entity.Expense{
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
	}

	session.mu.Lock()
	scope := session.scope
	session.mu.Unlock()

	id, err := s.expenseRepo.Create(ctx, scope, expense)
	if err != nil {
		return nil, err
	}
	expense.ID = id
	return expense, nil
}

// ActiveOrderView is the display shape of the tab being edited
type ActiveOrderView struct {
	ID    string
	Name  string
	Items []entity.LineItem
	Total money.Cents
}

// TillSnapshot is the full derived state handed to the rendering
// layer: plain data, no presentation
type TillSnapshot struct {
	Scope          repository.Scope
	Active         *ActiveOrderView
	OpenOrders     []entity.Order
	Report         ReportSnapshot
	RecentExpenses []entity.Expense
	History        []HistoryEntry
}

// Snapshot assembles the current till state from the active selection
// and the latest projection cells
func (s *TillService) Snapshot(uid string) (*TillSnapshot, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	scope := session.scope
	activeID := session.activeOrderID
	activeName := session.activeName
	items, total := snapshotItems(session.activeItems)
	openOrders := session.openOrders
	paidOrders := session.paidOrders
	expenses := session.expenses
	session.mu.Unlock()

	snap := &TillSnapshot{
		Scope:      scope,
		OpenOrders: openOrders.Snapshot(),
	}

	if activeID != "" {
		name := activeName
		if name == "" {
			name = utils.DisplayCodeFromID(activeID)
			if order := openOrders.Find(activeID); order != nil {
				name = order.DisplayName()
			}
		}
		snap.Active = &ActiveOrderView{
			ID:    activeID,
			Name:  name,
			Items: items,
			Total: total,
		}
	}

	paid := paidOrders.Snapshot()
	allExpenses := expenses.Snapshot()
	snap.Report = s.reports.Build(paid, allExpenses)
	snap.History = s.reports.CombinedHistory(paid, allExpenses)
	snap.RecentExpenses = expenses.Recent(s.expenseDisplayLimit)

	return snap, nil
}

// OpenOrders returns the live open-tabs view
func (s *TillService) OpenOrders(uid string) ([]entity.Order, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}
	return session.openOrders.Snapshot(), nil
}

// PaidOrders returns the live settled-tabs view
func (s *TillService) PaidOrders(uid string) ([]entity.Order, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}
	return session.paidOrders.Snapshot(), nil
}

// Watch subscribes to till change notifications for the live stream.
// The returned cancel func must be called when the consumer goes
// away.
func (s *TillService) Watch(uid string) (<-chan struct{}, func(), error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, nil, err
	}
	ch := session.Subscribe()
	return ch, func() { session.Unsubscribe(ch) }, nil
}

// Expenses returns all expenses in scope, newest first
func (s *TillService) Expenses(uid string) ([]entity.Expense, error) {
	session, err := s.sessions.Get(uid)
	if err != nil {
		return nil, err
	}
	return session.expenses.Snapshot(), nil
}

// snapshotItems copies the item list and computes its total; caller
// holds the session lock
func snapshotItems(items []entity.LineItem) ([]entity.LineItem, money.Cents) {
	out := make([]entity.LineItem, len(items))
	copy(out, items)
	var total money.Cents
	for _, item := range out {
		total += item.Price
	}
	return out, total
}

// removeItemValue takes out the last occurrence of item, used to
// compensate a failed append
func removeItemValue(items []entity.LineItem, item entity.LineItem) []entity.LineItem {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// insertItemAt restores an item to its original index, used to
// compensate a failed removal
func insertItemAt(items []entity.LineItem, item entity.LineItem, index int) []entity.LineItem {
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	items = append(items, entity.LineItem{})
	copy(items[index+1:], items[index:])
	items[index] = item
	return items
}
