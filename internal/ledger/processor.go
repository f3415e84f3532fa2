package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// effect is a single balance change caused by a transaction.
type effect struct {
	envelope bool
	name     string
	delta    decimal.Decimal
}

// effects returns the balance changes of t when it is recorded.
//
// Deleting a transaction applies exactly the same effects negated, so this
// is the only place where the direction of money movements is defined.
func effects(t Transaction) []effect {
	switch t.Kind {
	case KindExpense:
		e := []effect{{name: t.Account, delta: t.Amount.Neg()}}
		if t.Target != "" {
			e = append(e, effect{envelope: true, name: t.Target, delta: t.Amount.Neg()})
		}
		return e

	case KindIncome, KindSalary:
		return []effect{{name: t.Account, delta: t.Amount}}

	case KindDistribution:
		return []effect{
			{name: t.Account, delta: t.Amount.Neg()},
			{envelope: true, name: t.Target, delta: t.Amount},
		}

	case KindTransfer:
		return []effect{
			{name: t.Account, delta: t.Amount.Neg()},
			{name: t.Target, delta: t.Amount},
		}

	case KindTransferEnvelope:
		return []effect{
			{envelope: true, name: t.Account, delta: t.Amount.Neg()},
			{envelope: true, name: t.Target, delta: t.Amount},
		}
	}

	return nil
}

// apply applies the effects of t. With reverse set, all deltas are negated.
func (s *Store) apply(t Transaction, reverse bool) {
	for _, e := range effects(t) {
		delta := e.delta
		if reverse {
			delta = delta.Neg()
		}

		if e.envelope {
			s.AdjustEnvelopeBalance(e.name, delta)
		} else {
			s.AdjustAccountBalance(e.name, delta)
		}
	}
}

// validate verifies that a transaction can be recorded with the current state.
func (s *Store) validate(in TransactionInput) error {
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: '%s'", ErrInvalidKind, in.Kind)
	}

	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, in.Amount)
	}

	if in.Kind.usesAccount() {
		if _, err := s.openAccount(in.Account); err != nil {
			return err
		}
	}

	switch in.Kind {
	case KindExpense:
		if in.Target != "" {
			if _, err := s.existingEnvelope(in.Target); err != nil {
				return err
			}
		}

	case KindDistribution:
		if _, err := s.existingEnvelope(in.Target); err != nil {
			return err
		}

	case KindTransfer:
		if _, err := s.openAccount(in.Target); err != nil {
			return err
		}

		if in.Target == in.Account {
			return ErrSameSourceAndDestination
		}

	case KindTransferEnvelope:
		if _, err := s.existingEnvelope(in.Account); err != nil {
			return err
		}

		if _, err := s.existingEnvelope(in.Target); err != nil {
			return err
		}

		if in.Target == in.Account {
			return ErrSameSourceAndDestination
		}
	}

	return nil
}

// mutable verifies that the balance effects of t may be reversed.
func (s *Store) mutable(t Transaction) error {
	if !t.Kind.usesAccount() {
		return nil
	}

	if a := s.FindAccount(t.Account); a != nil && a.Closed {
		return fmt.Errorf("%w: '%s'", ErrAccountClosed, a.Name)
	}

	if t.Kind == KindTransfer {
		if a := s.FindAccount(t.Target); a != nil && a.Closed {
			return fmt.Errorf("%w: '%s'", ErrAccountClosed, a.Name)
		}
	}

	return nil
}

func (s *Store) newTransaction(id uuid.UUID, in TransactionInput) Transaction {
	t := Transaction{
		ID:          id,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Date:        in.Date,
		Account:     in.Account,
		Target:      in.Target,
	}

	if t.Date.IsZero() {
		t.Date = s.clock.Now()
	}

	// Income has no secondary reference
	if t.Kind.IsIncome() {
		t.Target = ""
	}

	return t
}

// record validates, applies and stores a transaction without notifying listeners.
func (s *Store) record(in TransactionInput) (*Transaction, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	t := s.newTransaction(uuid.New(), in)
	s.apply(t, false)
	s.transactions = append(s.transactions, &t)

	return &t, nil
}

// remove reverses and removes the transaction at index i without notifying listeners.
func (s *Store) remove(i int) {
	t := s.transactions[i]
	s.apply(*t, true)
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
}

// RecordTransaction records a transaction and applies its balance effects.
//
// Either both happen or, if an error is returned, neither does.
func (s *Store) RecordTransaction(in TransactionInput) (*Transaction, error) {
	t, err := s.record(in)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("id", t.ID.String()).Str("kind", string(t.Kind)).Str("amount", t.Amount.String()).Msg("ledger: transaction recorded")

	s.changed()
	return t, nil
}

// DeleteTransaction reverses the balance effects of a transaction and removes it.
//
// Transactions of closed accounts cannot be deleted.
func (s *Store) DeleteTransaction(id uuid.UUID) error {
	i := s.transactionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	if err := s.mutable(*s.transactions[i]); err != nil {
		return err
	}

	s.remove(i)
	log.Debug().Str("id", id.String()).Msg("ledger: transaction deleted")

	s.changed()
	return nil
}

// EditTransaction replaces the values of a transaction.
//
// The old balance effects are reversed and the new ones applied. The ID and
// the position in the store are kept. If in.Date is zero, the original date
// is kept.
func (s *Store) EditTransaction(id uuid.UUID, in TransactionInput) (*Transaction, error) {
	i := s.transactionIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	old := s.transactions[i]
	if err := s.mutable(*old); err != nil {
		return nil, err
	}

	if err := s.validate(in); err != nil {
		return nil, err
	}

	if in.Date.IsZero() {
		in.Date = old.Date
	}

	t := s.newTransaction(id, in)
	s.apply(*old, true)
	s.apply(t, false)
	s.transactions[i] = &t

	s.changed()
	return &t, nil
}
