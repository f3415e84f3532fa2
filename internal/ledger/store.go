// Package ledger implements the ledger and envelope allocation engine.
//
// A Store holds all accounts, envelopes and transactions in memory and keeps
// their balances consistent. It does not lock and does not perform I/O:
// callers serialize access and persist Snapshots themselves.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Store is the authoritative in-memory state of the ledger.
type Store struct {
	clock Clock

	accounts     []*Account
	envelopes    []*Envelope
	transactions []*Transaction
	categories   []string

	// Name indices. If a name is used by more than one entity, the one that
	// was indexed last wins.
	accountsByName  map[string]*Account
	envelopesByName map[string]*Envelope

	listeners []func(Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps and deadlines.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:           SystemClock,
		accountsByName:  make(map[string]*Account),
		envelopesByName: make(map[string]*Envelope),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// Now returns the current time of the store's clock.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// OnChange registers a function that is called with a fresh snapshot after
// every successful mutating operation.
func (s *Store) OnChange(f func(Snapshot)) {
	s.listeners = append(s.listeners, f)
}

func (s *Store) changed() {
	if len(s.listeners) == 0 {
		return
	}

	snapshot := s.Snapshot()
	for _, f := range s.listeners {
		f(snapshot)
	}
}

// FindAccount returns the account with the name, or nil.
func (s *Store) FindAccount(name string) *Account {
	return s.accountsByName[name]
}

// FindEnvelope returns the envelope with the name, or nil.
func (s *Store) FindEnvelope(name string) *Envelope {
	return s.envelopesByName[name]
}

// Account returns the account with the ID.
func (s *Store) Account(id uuid.UUID) (*Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: no account with ID %s", ErrInvalidReference, id)
}

// Envelope returns the envelope with the ID.
func (s *Store) Envelope(id uuid.UUID) (*Envelope, error) {
	for _, e := range s.envelopes {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no envelope with ID %s", ErrInvalidReference, id)
}

// Transaction returns the transaction with the ID.
func (s *Store) Transaction(id uuid.UUID) (*Transaction, error) {
	i := s.transactionIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return s.transactions[i], nil
}

func (s *Store) transactionIndex(id uuid.UUID) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Accounts returns all accounts in creation order.
func (s *Store) Accounts() []*Account {
	return append([]*Account(nil), s.accounts...)
}

// Envelopes returns all envelopes in creation order.
func (s *Store) Envelopes() []*Envelope {
	return append([]*Envelope(nil), s.envelopes...)
}

// Categories returns all category labels.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// AdjustAccountBalance adds delta to the balance of the named account.
//
// References may outlive the account they point to, so an unknown name is
// not an error. The call is a no-op in that case.
func (s *Store) AdjustAccountBalance(name string, delta decimal.Decimal) {
	a := s.FindAccount(name)
	if a == nil {
		log.Debug().Str("account", name).Str("delta", delta.String()).Msg("ledger: balance adjustment for unknown account skipped")
		return
	}

	a.Balance = a.Balance.Add(delta)
}

// AdjustEnvelopeBalance adds delta to the current amount of the named envelope.
// An unknown name is a no-op, see AdjustAccountBalance.
func (s *Store) AdjustEnvelopeBalance(name string, delta decimal.Decimal) {
	e := s.FindEnvelope(name)
	if e == nil {
		log.Debug().Str("envelope", name).Str("delta", delta.String()).Msg("ledger: balance adjustment for unknown envelope skipped")
		return
	}

	e.CurrentAmount = e.CurrentAmount.Add(delta)
}

// CreateAccount creates a new account.
//
// A non-zero opening balance is recorded as an income or expense transaction
// so that the balance always equals the sum of its transactions.
func (s *Store) CreateAccount(name string, openingBalance decimal.Decimal) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: the account name must not be empty", ErrInvalidReference)
	}

	if s.FindAccount(name) != nil {
		return nil, fmt.Errorf("%w: there already is an account named '%s'", ErrDuplicateName, name)
	}

	a := &Account{
		ID:        uuid.New(),
		Name:      name,
		Balance:   decimal.Zero,
		CreatedAt: s.clock.Now(),
	}
	s.accounts = append(s.accounts, a)
	s.accountsByName[a.Name] = a

	if !openingBalance.IsZero() {
		kind := KindIncome
		if openingBalance.IsNegative() {
			kind = KindExpense
		}

		_, err := s.record(TransactionInput{
			Kind:        kind,
			Amount:      openingBalance.Abs(),
			Description: "Opening balance",
			Account:     a.Name,
		})
		if err != nil {
			// Cannot happen for a fresh open account, but do not leave it half created
			s.accounts = s.accounts[:len(s.accounts)-1]
			delete(s.accountsByName, a.Name)
			return nil, err
		}
	}

	s.changed()
	return a, nil
}

// DeleteAccount removes an account.
//
// Its transactions are kept, but their references to the account are cleared.
func (s *Store) DeleteAccount(id uuid.UUID) error {
	a, err := s.Account(id)
	if err != nil {
		return err
	}

	if a.Closed {
		return fmt.Errorf("%w: closed accounts cannot be deleted", ErrAccountClosed)
	}

	for _, t := range s.transactions {
		if t.Kind.usesAccount() && t.Account == a.Name {
			t.Account = ""
		}
		if t.Kind == KindTransfer && t.Target == a.Name {
			t.Target = ""
		}
	}

	for i, candidate := range s.accounts {
		if candidate == a {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	s.reindex()

	s.changed()
	return nil
}

// EnvelopeInput contains the caller supplied values for an envelope.
type EnvelopeInput struct {
	Name     string
	Category string
	Color    string
	Goal     Goal

	// InitialAmount is moved from SourceAccount into the envelope on creation.
	// It is ignored for updates.
	InitialAmount decimal.Decimal
	SourceAccount string
}

func (in EnvelopeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: the envelope name must not be empty", ErrInvalidEnvelope)
	}

	if in.Goal == nil {
		return fmt.Errorf("%w: the envelope type must be set", ErrInvalidEnvelope)
	}

	return in.Goal.validate()
}

// CreateEnvelope creates a new envelope.
func (s *Store) CreateEnvelope(in EnvelopeInput) (*Envelope, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if s.FindEnvelope(name) != nil {
		return nil, fmt.Errorf("%w: there already is an envelope named '%s'", ErrDuplicateName, name)
	}

	if in.InitialAmount.IsNegative() {
		return nil, fmt.Errorf("%w: the initial amount must not be negative", ErrInvalidAmount)
	}

	if in.InitialAmount.IsPositive() {
		if _, err := s.openAccount(in.SourceAccount); err != nil {
			return nil, err
		}
	}

	e := &Envelope{
		ID:            uuid.New(),
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		Color:         strings.TrimSpace(in.Color),
		CurrentAmount: decimal.Zero,
		CreatedAt:     s.clock.Now(),
		Goal:          in.Goal,
	}
	s.envelopes = append(s.envelopes, e)
	s.envelopesByName[e.Name] = e

	if in.InitialAmount.IsPositive() {
		_, err := s.record(TransactionInput{
			Kind:        KindDistribution,
			Amount:      in.InitialAmount,
			Description: "Initial amount",
			Category:    e.Category,
			Account:     in.SourceAccount,
			Target:      e.Name,
		})
		if err != nil {
			s.envelopes = s.envelopes[:len(s.envelopes)-1]
			delete(s.envelopesByName, e.Name)
			return nil, err
		}
	}

	s.changed()
	return e, nil
}

// UpdateEnvelope changes name, category, color and goal of an envelope.
//
// The current amount is never touched. A rename is propagated to all
// transactions referencing the envelope.
func (s *Store) UpdateEnvelope(id uuid.UUID, in EnvelopeInput) (*Envelope, error) {
	e, err := s.Envelope(id)
	if err != nil {
		return nil, err
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if other := s.FindEnvelope(name); other != nil && other != e {
		return nil, fmt.Errorf("%w: there already is an envelope named '%s'", ErrDuplicateName, name)
	}

	if name != e.Name {
		for _, t := range s.transactions {
			switch t.Kind {
			case KindTransferEnvelope:
				if t.Account == e.Name {
					t.Account = name
				}
				if t.Target == e.Name {
					t.Target = name
				}
			case KindExpense, KindDistribution:
				if t.Target == e.Name {
					t.Target = name
				}
			}
		}
	}

	e.Name = name
	e.Category = strings.TrimSpace(in.Category)
	e.Color = strings.TrimSpace(in.Color)
	e.Goal = in.Goal
	s.reindex()

	s.changed()
	return e, nil
}

// DeleteEnvelope removes an envelope. Transactions keep their reference to it.
func (s *Store) DeleteEnvelope(id uuid.UUID) error {
	e, err := s.Envelope(id)
	if err != nil {
		return err
	}

	for i, candidate := range s.envelopes {
		if candidate == e {
			s.envelopes = append(s.envelopes[:i], s.envelopes[i+1:]...)
			break
		}
	}
	s.reindex()

	s.changed()
	return nil
}

// AddCategory adds a category label. Adding an existing label is a no-op.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: the category name must not be empty", ErrInvalidReference)
	}

	for _, c := range s.categories {
		if c == name {
			return nil
		}
	}

	s.categories = append(s.categories, name)
	s.changed()
	return nil
}

// reindex rebuilds the name indices in creation order.
//
// Names are unique, but states saved by older versions may contain an open
// and a closed account with the same name. The open account wins.
func (s *Store) reindex() {
	s.accountsByName = make(map[string]*Account, len(s.accounts))
	for _, a := range s.accounts {
		if other, ok := s.accountsByName[a.Name]; ok && !other.Closed && a.Closed {
			continue
		}
		s.accountsByName[a.Name] = a
	}

	s.envelopesByName = make(map[string]*Envelope, len(s.envelopes))
	for _, e := range s.envelopes {
		s.envelopesByName[e.Name] = e
	}
}

// openAccount resolves name to an account that accepts transactions.
func (s *Store) openAccount(name string) (*Account, error) {
	a := s.FindAccount(name)
	if a == nil {
		return nil, fmt.Errorf("%w: no account named '%s'", ErrInvalidReference, name)
	}

	if a.Closed {
		return nil, fmt.Errorf("%w: '%s'", ErrAccountClosed, name)
	}

	return a, nil
}

// existingEnvelope resolves name to an envelope.
func (s *Store) existingEnvelope(name string) (*Envelope, error) {
	e := s.FindEnvelope(name)
	if e == nil {
		return nil, fmt.Errorf("%w: no envelope named '%s'", ErrInvalidReference, name)
	}
	return e, nil
}
