package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lromero86/tacopos-api/internal/application/projection"
	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/pkg/apperror"
)

// ErrNoSession is returned when an operation arrives for an operator
// with no live till session
var ErrNoSession = &apperror.AppError{
	Code:    401,
	Kind:    apperror.KindAuth,
	Message: "No active till session, sign in again",
}

// Session is the till context for one authenticated operator: the
// cutoff scope, the active order selection with its optimistic item
// copy, the single-flight payment flag, and the three live
// projections feeding the views.
//
// All mutable fields are guarded by mu with a single writer at a
// time; the lock is never held across a store round trip, so
// interleaving only happens at those suspension points.
type Session struct {
	mu sync.Mutex

	operator *entity.Operator
	scope    repository.Scope

	activeOrderID string
	activeName    string
	activeItems   []entity.LineItem

	paying bool

	cancelWatch context.CancelFunc
	openOrders  *projection.OrderProjection
	paidOrders  *projection.OrderProjection
	expenses    *projection.ExpenseProjection

	watchersMu sync.Mutex
	watchers   map[chan struct{}]struct{}
}

// Operator returns the session's operator profile
func (s *Session) Operator() *entity.Operator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.operator
}

// Scope returns the current cutoff scope
func (s *Session) Scope() repository.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// ActiveOrderID returns the id of the tab being edited, or ""
func (s *Session) ActiveOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeOrderID
}

// clearActiveLocked resets the active selection. Caller holds mu.
func (s *Session) clearActiveLocked() {
	s.activeOrderID = ""
	s.activeName = ""
	s.activeItems = nil
}

// syncActiveWithOpenOrders clears the active selection when the
// active tab has disappeared from the open view (paid or canceled,
// possibly by another session).
func (s *Session) syncActiveWithOpenOrders() {
	s.mu.Lock()
	if s.activeOrderID != "" && !s.openOrders.Contains(s.activeOrderID) {
		s.clearActiveLocked()
	}
	s.mu.Unlock()
}

// Subscribe registers a watcher that is poked on every projection
// change, used by the live snapshot stream
func (s *Session) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.watchersMu.Lock()
	if s.watchers == nil {
		s.watchers = make(map[chan struct{}]struct{})
	}
	s.watchers[ch] = struct{}{}
	s.watchersMu.Unlock()
	return ch
}

// Unsubscribe removes a watcher
func (s *Session) Unsubscribe(ch chan struct{}) {
	s.watchersMu.Lock()
	delete(s.watchers, ch)
	s.watchersMu.Unlock()
}

func (s *Session) notifyWatchers() {
	s.watchersMu.Lock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.watchersMu.Unlock()
}

// SessionManager owns the till sessions and their projection
// lifecycles. Sign-in opens a session scoped to today; sign-out and
// cutoff changes tear projections down before anything is rebuilt, so
// data from two scopes can never bleed into one view.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	orderRepo   repository.OrderRepository
	expenseRepo repository.ExpenseRepository
}

// NewSessionManager creates a session manager
func NewSessionManager(orderRepo repository.OrderRepository, expenseRepo repository.ExpenseRepository) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
	}
}

// Open starts (or returns) the till session for an operator, scoped
// to today's business date
func (m *SessionManager) Open(ctx context.Context, operator *entity.Operator) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[operator.UID]; ok {
		existing.mu.Lock()
		existing.operator = operator
		existing.mu.Unlock()
		return existing, nil
	}

	session := &Session{operator: operator}
	scope := repository.Scope{
		OperatorID: operator.UID,
		Date:       time.Now().Format("2006-01-02"),
	}
	if err := m.startProjections(session, scope); err != nil {
		return nil, err
	}

	m.sessions[operator.UID] = session
	return session, nil
}

// Get returns the live session for an operator
func (m *SessionManager) Get(uid string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[uid]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

// Close tears down the operator's session: projections stopped,
// active order cleared, session forgotten
func (m *SessionManager) Close(uid string) {
	m.mu.Lock()
	session, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()

	if !ok {
		return
	}

	session.mu.Lock()
	if session.cancelWatch != nil {
		session.cancelWatch()
	}
	session.clearActiveLocked()
	session.mu.Unlock()
	session.notifyWatchers()
}

// ChangeCutoff moves the session to a new business date. An invalid
// date is rejected with no state change at all; the same date is a
// no-op. A genuinely new date subscribes everything under the new
// scope, then clears the active order and stops the old streams; if
// the resubscribe fails the old scope and views stay in place.
func (m *SessionManager) ChangeCutoff(ctx context.Context, uid, date string) error {
	session, err := m.Get(uid)
	if err != nil {
		return err
	}

	if !repository.ValidCutoffDate(date) {
		return apperror.NewValidationError("Invalid cutoff date, use YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperror.NewValidationError("Invalid cutoff date, use YYYY-MM-DD")
	}

	session.mu.Lock()
	if session.scope.Date == date {
		session.mu.Unlock()
		return nil
	}
	session.mu.Unlock()

	if err := m.startProjections(session, repository.Scope{OperatorID: uid, Date: date}); err != nil {
		return err
	}
	session.notifyWatchers()
	return nil
}

// startProjections subscribes fresh projection cells under scope and
// installs them on the session only once every subscription is live;
// the previous streams keep running until then. A failed subscribe
// leaves the session on its old scope with its old views intact. The
// watch context deliberately outlives the originating request.
func (m *SessionManager) startProjections(session *Session, scope repository.Scope) error {
	watchCtx, cancel := context.WithCancel(context.Background())

	openOrders := projection.NewOpenOrders()
	paidOrders := projection.NewPaidOrders()
	expenses := projection.NewExpenses()

	openOrders.SetOnChange(func() {
		session.syncActiveWithOpenOrders()
		session.notifyWatchers()
	})
	paidOrders.SetOnChange(session.notifyWatchers)
	expenses.SetOnChange(session.notifyWatchers)

	openStream, err := m.orderRepo.Watch(watchCtx, scope, enum.OrderStatusOpen)
	if err != nil {
		cancel()
		return apperror.NewPersistenceError("Could not subscribe to open orders")
	}
	paidStream, err := m.orderRepo.Watch(watchCtx, scope, enum.OrderStatusPaid)
	if err != nil {
		cancel()
		return apperror.NewPersistenceError("Could not subscribe to paid orders")
	}
	expenseStream, err := m.expenseRepo.Watch(watchCtx, scope)
	if err != nil {
		cancel()
		return apperror.NewPersistenceError("Could not subscribe to expenses")
	}

	session.mu.Lock()
	oldCancel := session.cancelWatch
	session.cancelWatch = cancel
	session.scope = scope
	session.openOrders = openOrders
	session.paidOrders = paidOrders
	session.expenses = expenses
	session.clearActiveLocked()
	session.mu.Unlock()

	if oldCancel != nil {
		oldCancel()
	}

	go openOrders.Run(watchCtx, openStream)
	go paidOrders.Run(watchCtx, paidStream)
	go expenses.Run(watchCtx, expenseStream)

	log.Printf("till session %s: projections bound to %s", scope.OperatorID, scope.Date)
	return nil
}
