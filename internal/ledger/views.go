package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// TotalBalance is the sum of the balances of all open accounts.
func (s *Store) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.accounts {
		if !a.Closed {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// TotalEnvelopes is the sum of the current amounts of all envelopes.
func (s *Store) TotalEnvelopes() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.envelopes {
		total = total.Add(e.CurrentAmount)
	}
	return total
}

// AvailableBalance is the total balance of open accounts plus the current
// amount of every envelope with a positive balance.
func (s *Store) AvailableBalance() decimal.Decimal {
	total := s.TotalBalance()
	for _, e := range s.envelopes {
		if e.CurrentAmount.IsPositive() {
			total = total.Add(e.CurrentAmount)
		}
	}
	return total
}

// Transactions returns all transactions, newest first.
//
// Transactions with the same date keep the order they were recorded in.
func (s *Store) Transactions() []*Transaction {
	transactions := append([]*Transaction(nil), s.transactions...)
	slices.SortStableFunc(transactions, func(a, b *Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return transactions
}

// AccountTransactions returns all transactions that reference the named
// account, newest first.
func (s *Store) AccountTransactions(name string) []*Transaction {
	var transactions []*Transaction
	for _, t := range s.Transactions() {
		if (t.Kind.usesAccount() && t.Account == name) || (t.Kind == KindTransfer && t.Target == name) {
			transactions = append(transactions, t)
		}
	}
	return transactions
}

// EnvelopeTransactions returns all transactions that reference the named
// envelope, newest first.
func (s *Store) EnvelopeTransactions(name string) []*Transaction {
	var transactions []*Transaction
	for _, t := range s.Transactions() {
		switch t.Kind {
		case KindTransferEnvelope:
			if t.Account == name || t.Target == name {
				transactions = append(transactions, t)
			}
		case KindExpense, KindDistribution:
			if t.Target == name {
				transactions = append(transactions, t)
			}
		}
	}
	return transactions
}

// OverdrawnEnvelopes returns all envelopes with a negative current amount.
func (s *Store) OverdrawnEnvelopes() []*Envelope {
	var overdrawn []*Envelope
	for _, e := range s.envelopes {
		if e.Overdrawn() {
			overdrawn = append(overdrawn, e)
		}
	}
	return overdrawn
}
