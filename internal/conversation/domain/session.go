// Package domain models one user's conversation state: which workflow is
// active, which step it is on, and the fields collected so far. Each
// workflow state owns exactly the fields valid for its steps, so a field is
// never ambiguously "maybe collected".
package domain

import (
	"errors"
	"time"
)

var (
	// ErrWorkflowNotActive indicates a step advance without an active workflow.
	ErrWorkflowNotActive = errors.New("workflow is not active")
	// ErrStepSkipped indicates an advance that does not follow the transition table.
	ErrStepSkipped = errors.New("workflow step may not be skipped")
)

// WorkflowKind names the active multi-step conversation, if any.
type WorkflowKind string

const (
	// WorkflowNone means the session is idle.
	WorkflowNone WorkflowKind = ""
	// WorkflowCheckout is the cart-to-order conversation.
	WorkflowCheckout WorkflowKind = "checkout"
	// WorkflowIntake is the admin product-creation conversation.
	WorkflowIntake WorkflowKind = "intake"
)

// CheckoutStep enumerates checkout's non-terminal states in order.
type CheckoutStep int

const (
	// CheckoutAwaitingPhone collects the contact phone.
	CheckoutAwaitingPhone CheckoutStep = iota + 1
	// CheckoutAwaitingAddress collects the delivery address.
	CheckoutAwaitingAddress
	// CheckoutAwaitingConfirmation waits for an explicit confirm or cancel.
	CheckoutAwaitingConfirmation
)

// IntakeStep enumerates intake's non-terminal states in order.
type IntakeStep int

const (
	// IntakeAwaitingName collects the product name.
	IntakeAwaitingName IntakeStep = iota + 1
	// IntakeAwaitingDescription collects the product description.
	IntakeAwaitingDescription
	// IntakeAwaitingPrice collects and validates the price.
	IntakeAwaitingPrice
)

// SnapshotItem is one order line frozen at confirmation-request time.
type SnapshotItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderSnapshot freezes cart contents and total when checkout reaches the
// confirmation step. Later cart edits do not change the order being
// confirmed.
type OrderSnapshot struct {
	Items []SnapshotItem `json:"items"`
	Total int64          `json:"total"`
}

// CheckoutState carries the fields collected by the checkout workflow.
// Phone and Address are stored verbatim; no format validation is applied.
type CheckoutState struct {
	Step     CheckoutStep   `json:"step"`
	Phone    string         `json:"phone,omitempty"`
	Address  string         `json:"address,omitempty"`
	Snapshot *OrderSnapshot `json:"snapshot,omitempty"`
}

// IntakeState carries the fields collected by the intake workflow.
type IntakeState struct {
	Step        IntakeStep `json:"step"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Session is the single conversation state for one user. Exactly one
// session exists per user; starting a workflow overwrites any prior one.
type Session struct {
	UserID    int64          `json:"user_id"`
	Kind      WorkflowKind   `json:"kind,omitempty"`
	Checkout  *CheckoutState `json:"checkout,omitempty"`
	Intake    *IntakeState   `json:"intake,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSession returns an idle session for the user.
func NewSession(userID int64) Session {
	return Session{UserID: userID}
}

// IsIdle reports whether no workflow is active.
func (s Session) IsIdle() bool {
	return s.Kind == WorkflowNone
}

// Reset returns the session to idle, discarding all collected fields.
func (s *Session) Reset(now time.Time) {
	s.Kind = WorkflowNone
	s.Checkout = nil
	s.Intake = nil
	s.UpdatedAt = now.UTC()
}

// StartCheckout replaces any active workflow with a fresh checkout at the
// phone step. Prior collected fields are discarded (no workflow stacking).
func (s *Session) StartCheckout(now time.Time) {
	s.Kind = WorkflowCheckout
	s.Checkout = &CheckoutState{Step: CheckoutAwaitingPhone}
	s.Intake = nil
	s.UpdatedAt = now.UTC()
}

// StartIntake replaces any active workflow with a fresh intake at the name
// step. The authorization gate belongs to the workflow, not the session.
func (s *Session) StartIntake(now time.Time) {
	s.Kind = WorkflowIntake
	s.Intake = &IntakeState{Step: IntakeAwaitingName}
	s.Checkout = nil
	s.UpdatedAt = now.UTC()
}

// AdvanceCheckout moves checkout to the given step, enforcing the
// transition table: a step may only advance to its immediate successor.
func (s *Session) AdvanceCheckout(to CheckoutStep, now time.Time) error {
	if s.Kind != WorkflowCheckout || s.Checkout == nil {
		return ErrWorkflowNotActive
	}
	if to != s.Checkout.Step+1 {
		return ErrStepSkipped
	}
	s.Checkout.Step = to
	s.UpdatedAt = now.UTC()
	return nil
}

// AdvanceIntake moves intake to the given step, enforcing the transition
// table.
func (s *Session) AdvanceIntake(to IntakeStep, now time.Time) error {
	if s.Kind != WorkflowIntake || s.Intake == nil {
		return ErrWorkflowNotActive
	}
	if to != s.Intake.Step+1 {
		return ErrStepSkipped
	}
	s.Intake.Step = to
	s.UpdatedAt = now.UTC()
	return nil
}

// Touch refreshes the inactivity clock without changing workflow state.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// ExpiredAt reports whether the session's workflow has been idle longer
// than the given window. Idle sessions and a zero window never expire.
func (s Session) ExpiredAt(now time.Time, window time.Duration) bool {
	if s.IsIdle() || window <= 0 || s.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(s.UpdatedAt) > window
}
