package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnvelopeKind identifies the variant of an Envelope.
type EnvelopeKind string

const (
	KindFixedTarget     EnvelopeKind = "fixedTarget"
	KindRecurringRefill EnvelopeKind = "recurringRefill"
	KindOpenEnded       EnvelopeKind = "openEnded"
)

// Goal is the variant specific part of an Envelope.
//
// The interface is sealed, the only implementations are FixedTarget,
// RecurringRefill and OpenEnded.
type Goal interface {
	Kind() EnvelopeKind
	validate() error
}

// FixedTarget saves towards an amount, optionally until a date.
type FixedTarget struct {
	Amount decimal.Decimal
	Date   *time.Time
}

func (FixedTarget) Kind() EnvelopeKind {
	return KindFixedTarget
}

func (g FixedTarget) validate() error {
	if !g.Amount.IsPositive() {
		return fmt.Errorf("%w: the target amount must be larger than zero", ErrInvalidEnvelope)
	}
	return nil
}

// RecurringRefill is topped up to MonthlyRefill every month. This is also
// known as a "glass".
type RecurringRefill struct {
	MonthlyRefill decimal.Decimal
}

func (RecurringRefill) Kind() EnvelopeKind {
	return KindRecurringRefill
}

func (g RecurringRefill) validate() error {
	if !g.MonthlyRefill.IsPositive() {
		return fmt.Errorf("%w: the monthly refill must be larger than zero", ErrInvalidEnvelope)
	}
	return nil
}

// OpenEnded accepts unbounded contributions. It has neither a target nor a deadline.
type OpenEnded struct{}

func (OpenEnded) Kind() EnvelopeKind {
	return KindOpenEnded
}

func (OpenEnded) validate() error {
	return nil
}

// Envelope is a labeled sub-allocation of money.
//
// CurrentAmount can be negative, an overdrawn envelope is a valid state.
type Envelope struct {
	ID            uuid.UUID
	Name          string
	Category      string
	Color         string
	CurrentAmount decimal.Decimal
	CreatedAt     time.Time
	Goal          Goal
}

// Kind returns the variant of the envelope.
func (e Envelope) Kind() EnvelopeKind {
	if e.Goal == nil {
		return KindOpenEnded
	}
	return e.Goal.Kind()
}

// IsInfinite is true for open ended envelopes.
func (e Envelope) IsInfinite() bool {
	return e.Kind() == KindOpenEnded
}

// Overdrawn reports if more money was taken out of the envelope than was put in.
func (e Envelope) Overdrawn() bool {
	return e.CurrentAmount.IsNegative()
}

// Needed returns the amount missing to reach the target or the monthly refill.
//
// It is zero for open ended envelopes and for envelopes that are already full.
func (e Envelope) Needed() decimal.Decimal {
	var target decimal.Decimal

	switch g := e.Goal.(type) {
	case FixedTarget:
		target = g.Amount
	case RecurringRefill:
		target = g.MonthlyRefill
	default:
		return decimal.Zero
	}

	return decimal.Max(decimal.Zero, target.Sub(e.CurrentAmount))
}

// Reached is true for fixed target envelopes that hold at least their target.
//
// Reaching the target does not lock the envelope, it can still be used.
func (e Envelope) Reached() bool {
	g, ok := e.Goal.(FixedTarget)
	if !ok {
		return false
	}

	return e.CurrentAmount.GreaterThanOrEqual(g.Amount)
}

// deadline returns the target date of fixed target envelopes, if any.
func (e Envelope) deadline() *time.Time {
	if g, ok := e.Goal.(FixedTarget); ok {
		return g.Date
	}
	return nil
}
