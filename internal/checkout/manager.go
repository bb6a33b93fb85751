package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/glowbeauty/glow-backend/internal/cart"
	"github.com/glowbeauty/glow-backend/internal/orders"
	"github.com/glowbeauty/glow-backend/pkg/clock"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmitInput is the payment form. Card number, holder name, expiry and CVV
// are required for every method; EMI additionally needs a valid plan.
type SubmitInput struct {
	Method     PaymentMethod
	CardNumber string
	CardName   string
	Expiry     string
	CVV        string
	EMIMonths  int
	UserID     string
	UserName   string
}

// CloseResult reports what closing a checkout did.
type CloseResult struct {
	Completed bool   `json:"completed"`
	OrderRef  string `json:"order_ref"`
}

type orderWriter interface {
	Append(ctx context.Context, input orders.AppendInput) (*orders.OrderDTO, error)
}

type cartCloser interface {
	Clear(ctx context.Context, sessionID string) (cart.State, error)
}

// Manager runs the simulated payment state machine. One live attempt per
// storefront session; processing walks ProcessingSteps on the scheduler so
// tests drive virtual time.
type Manager struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*session
	bySession map[string]uuid.UUID

	scheduler clock.Scheduler
	cadence   time.Duration
	ttl       time.Duration
	orders    orderWriter
	carts     cartCloser
	logg      *logger.Logger
}

type ManagerParams struct {
	Scheduler clock.Scheduler
	Cadence   time.Duration
	// SessionTTL bounds how long an unclosed attempt is kept. Zero disables
	// expiry.
	SessionTTL time.Duration
	Orders     orderWriter
	Carts      cartCloser
	Logger     *logger.Logger
}

func NewManager(params ManagerParams) (*Manager, error) {
	if params.Scheduler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout manager requires a scheduler")
	}
	if params.Cadence <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout manager requires a positive step cadence")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout manager requires an order writer")
	}
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout manager requires a cart closer")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout manager requires a logger")
	}
	return &Manager{
		sessions:  make(map[uuid.UUID]*session),
		bySession: make(map[string]uuid.UUID),
		scheduler: params.Scheduler,
		cadence:   params.Cadence,
		ttl:       params.SessionTTL,
		orders:    params.Orders,
		carts:     params.Carts,
		logg:      params.Logger,
	}, nil
}

// Open starts a fresh checkout attempt for the storefront session. Any prior
// attempt for the same session is discarded, timers and all; the new attempt
// always begins Pending with a newly minted order ref.
func (m *Manager) Open(_ context.Context, sessionID string, total decimal.Decimal) (SessionDTO, error) {
	if strings.TrimSpace(sessionID) == "" {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session is required")
	}
	if total.IsNegative() {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "total cannot be negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if priorID, ok := m.bySession[sessionID]; ok {
		m.discardLocked(priorID)
	}

	now := m.scheduler.Now()
	attempt := &session{
		id:        uuid.New(),
		sessionID: sessionID,
		orderRef:  newOrderRef(now),
		status:    StatusPending,
		total:     total,
		openedAt:  now,
		updatedAt: now,
	}
	if m.ttl > 0 {
		id := attempt.id
		attempt.expiry = m.scheduler.AfterFunc(m.ttl, func() {
			m.expire(id)
		})
	}
	m.sessions[attempt.id] = attempt
	m.bySession[sessionID] = attempt.id
	return attempt.dto(), nil
}

// Submit validates the payment form and moves the attempt into processing.
// The first sub-step is entered immediately; the scheduler advances the rest.
func (m *Manager) Submit(ctx context.Context, checkoutID uuid.UUID, input SubmitInput) (SessionDTO, error) {
	if err := validateSubmit(input); err != nil {
		return SessionDTO{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	attempt, ok := m.sessions[checkoutID]
	if !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout not found")
	}
	if attempt.status != StatusPending {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already submitted")
	}

	attempt.method = input.Method
	attempt.emiMonths = input.EMIMonths
	attempt.userID = input.UserID
	attempt.status = StatusProcessing
	attempt.step = 0
	attempt.updatedAt = m.scheduler.Now()
	attempt.stepTimer = m.scheduler.AfterFunc(m.cadence, func() {
		m.advance(checkoutID)
	})
	return attempt.dto(), nil
}

// Get returns the current state of the attempt, for polling.
func (m *Manager) Get(_ context.Context, checkoutID uuid.UUID) (SessionDTO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	attempt, ok := m.sessions[checkoutID]
	if !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout not found")
	}
	return attempt.dto(), nil
}

// Close finishes the attempt. From Success the session's cart is cleared and
// the close reports completed; from any earlier state the attempt is simply
// abandoned and the cart left untouched.
func (m *Manager) Close(ctx context.Context, checkoutID uuid.UUID) (CloseResult, error) {
	m.mu.Lock()
	attempt, ok := m.sessions[checkoutID]
	if !ok {
		m.mu.Unlock()
		return CloseResult{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout not found")
	}
	completed := attempt.status == StatusSuccess
	orderRef := attempt.orderRef
	sessionID := attempt.sessionID
	m.discardLocked(checkoutID)
	m.mu.Unlock()

	if completed {
		if _, err := m.carts.Clear(ctx, sessionID); err != nil {
			m.logg.Warn(m.logg.WithSessionID(ctx, sessionID), "clearing cart after checkout failed")
		}
	}
	return CloseResult{Completed: completed, OrderRef: orderRef}, nil
}

// advance fires on the scheduler: move to the next sub-step, or complete the
// payment once the last one has been shown.
func (m *Manager) advance(checkoutID uuid.UUID) {
	m.mu.Lock()

	attempt, ok := m.sessions[checkoutID]
	if !ok || attempt.status != StatusProcessing {
		m.mu.Unlock()
		return
	}

	attempt.updatedAt = m.scheduler.Now()
	if attempt.step < len(ProcessingSteps)-1 {
		attempt.step++
		attempt.stepTimer = m.scheduler.AfterFunc(m.cadence, func() {
			m.advance(checkoutID)
		})
		m.mu.Unlock()
		return
	}

	attempt.status = StatusSuccess
	attempt.stepTimer = nil
	userID := attempt.userID
	orderRef := attempt.orderRef
	total := attempt.total
	placedAt := attempt.updatedAt
	m.mu.Unlock()

	// Anonymous checkouts succeed without a profile record.
	if userID == "" {
		return
	}
	ctx := context.Background()
	_, err := m.orders.Append(ctx, orders.AppendInput{
		UserID:   userID,
		OrderRef: orderRef,
		Total:    total,
		PlacedAt: placedAt,
	})
	if err != nil {
		m.logg.Error(m.logg.WithUserID(ctx, userID), "saving profile order failed", err)
	}
}

// expire drops an attempt that was never closed within the TTL. The cart is
// left untouched, same as an explicit abandon.
func (m *Manager) expire(checkoutID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discardLocked(checkoutID)
}

// discardLocked removes the attempt and stops any pending timers. Callers
// hold the mutex.
func (m *Manager) discardLocked(checkoutID uuid.UUID) {
	attempt, ok := m.sessions[checkoutID]
	if !ok {
		return
	}
	if attempt.stepTimer != nil {
		attempt.stepTimer.Stop()
	}
	if attempt.expiry != nil {
		attempt.expiry.Stop()
	}
	delete(m.sessions, checkoutID)
	delete(m.bySession, attempt.sessionID)
}

func validateSubmit(input SubmitInput) error {
	details := map[string]string{}
	switch input.Method {
	case MethodCard, MethodEMI, MethodCOD:
	default:
		details["method"] = "unknown payment method"
	}
	if strings.TrimSpace(input.CardNumber) == "" {
		details["card_number"] = "card number is required"
	}
	if strings.TrimSpace(input.CardName) == "" {
		details["card_name"] = "cardholder name is required"
	}
	if strings.TrimSpace(input.Expiry) == "" {
		details["expiry"] = "expiry is required"
	}
	if strings.TrimSpace(input.CVV) == "" {
		details["cvv"] = "cvv is required"
	}
	if input.Method == MethodEMI {
		if _, ok := planForMonths(input.EMIMonths); !ok {
			details["emi_months"] = "unknown installment plan"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "please fill in all payment details").WithDetails(details)
	}
	return nil
}
