package checkout

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/glowbeauty/glow-backend/pkg/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the payment state machine position.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// PaymentMethod selects how the simulated payment is made.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodEMI  PaymentMethod = "emi"
	MethodCOD  PaymentMethod = "cod"
)

// ProcessingSteps are the sub-steps walked while Status is processing, in
// order. The last one completes the payment.
var ProcessingSteps = []string{
	"Processing Payment",
	"Preparing Order",
	"Ready for Shipping",
}

// session is one checkout attempt. Guarded by the manager's mutex.
type session struct {
	id         uuid.UUID
	sessionID  string
	userID     string
	orderRef   string
	status     Status
	step       int
	method     PaymentMethod
	emiMonths  int
	total      decimal.Decimal
	failure    string
	openedAt   time.Time
	updatedAt  time.Time
	stepTimer  clock.Timer
	expiry     clock.Timer
}

// SessionDTO is the poll/submit response shape.
type SessionDTO struct {
	ID          uuid.UUID       `json:"id"`
	OrderRef    string          `json:"order_ref"`
	Status      Status          `json:"status"`
	CurrentStep string          `json:"current_step,omitempty"`
	Steps       []string        `json:"steps"`
	Total       decimal.Decimal `json:"total"`
	Error       string          `json:"error,omitempty"`
	OpenedAt    time.Time       `json:"opened_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (s *session) dto() SessionDTO {
	steps := make([]string, len(ProcessingSteps))
	copy(steps, ProcessingSteps)

	dto := SessionDTO{
		ID:        s.id,
		OrderRef:  s.orderRef,
		Status:    s.status,
		Steps:     steps,
		Total:     s.total,
		Error:     s.failure,
		OpenedAt:  s.openedAt,
		UpdatedAt: s.updatedAt,
	}
	if s.status == StatusProcessing {
		dto.CurrentStep = ProcessingSteps[s.step]
	}
	return dto
}

const refAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newOrderRef builds the public order reference: ORD-<epoch-millis>-<6 random
// base36 chars>. The millisecond stamp plus suffix keeps refs unique across
// rapid reopens.
func newOrderRef(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 6; i++ {
		suffix.WriteByte(refAlphabet[rand.Intn(len(refAlphabet))])
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix.String())
}
