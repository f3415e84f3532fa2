package ledger

import "context"

// Snapshot is a copy of the complete state of a Store.
type Snapshot struct {
	Accounts     []Account
	Envelopes    []Envelope
	Transactions []Transaction
	Categories   []string
}

// Repository persists snapshots. The Store never calls it, the caller
// saves after every mutating operation.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// Snapshot returns a copy of the current state. Transactions are in the
// order they were recorded.
func (s *Store) Snapshot() Snapshot {
	snapshot := Snapshot{
		Accounts:     make([]Account, 0, len(s.accounts)),
		Envelopes:    make([]Envelope, 0, len(s.envelopes)),
		Transactions: make([]Transaction, 0, len(s.transactions)),
		Categories:   append([]string{}, s.categories...),
	}

	for _, a := range s.accounts {
		snapshot.Accounts = append(snapshot.Accounts, *a)
	}

	for _, e := range s.envelopes {
		snapshot.Envelopes = append(snapshot.Envelopes, copyEnvelope(*e))
	}

	for _, t := range s.transactions {
		snapshot.Transactions = append(snapshot.Transactions, *t)
	}

	return snapshot
}

// Restore replaces the state of the store with the snapshot.
//
// Balances are taken as they are, they are not recomputed. Listeners are
// not notified.
func (s *Store) Restore(snapshot Snapshot) {
	s.accounts = make([]*Account, 0, len(snapshot.Accounts))
	for _, a := range snapshot.Accounts {
		a := a
		s.accounts = append(s.accounts, &a)
	}

	s.envelopes = make([]*Envelope, 0, len(snapshot.Envelopes))
	for _, e := range snapshot.Envelopes {
		c := copyEnvelope(e)
		s.envelopes = append(s.envelopes, &c)
	}

	s.transactions = make([]*Transaction, 0, len(snapshot.Transactions))
	for _, t := range snapshot.Transactions {
		t := t
		s.transactions = append(s.transactions, &t)
	}

	s.categories = append([]string(nil), snapshot.Categories...)
	s.reindex()
}

// copyEnvelope returns a copy of e that shares no memory with it.
func copyEnvelope(e Envelope) Envelope {
	if g, ok := e.Goal.(FixedTarget); ok && g.Date != nil {
		d := *g.Date
		g.Date = &d
		e.Goal = g
	}
	return e
}
