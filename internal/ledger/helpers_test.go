package ledger_test

import (
	"testing"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now is the fixed time used by all stores in the tests.
var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newStore() *ledger.Store {
	return ledger.New(ledger.WithClock(ledger.FixedClock(now)))
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inDays(days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func createAccount(t *testing.T, s *ledger.Store, name, balance string) *ledger.Account {
	a, err := s.CreateAccount(name, d(balance))
	require.Nil(t, err, "account could not be created")
	return a
}

func createEnvelope(t *testing.T, s *ledger.Store, name string, goal ledger.Goal) *ledger.Envelope {
	e, err := s.CreateEnvelope(ledger.EnvelopeInput{Name: name, Goal: goal})
	require.Nil(t, err, "envelope could not be created")
	return e
}

func record(t *testing.T, s *ledger.Store, in ledger.TransactionInput) *ledger.Transaction {
	tr, err := s.RecordTransaction(in)
	require.Nil(t, err, "transaction could not be recorded")
	return tr
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s. %v", expected, actual, msgAndArgs)
}

// lastTransaction returns the transaction that was recorded last.
func lastTransaction(s *ledger.Store) ledger.Transaction {
	transactions := s.Snapshot().Transactions
	return transactions[len(transactions)-1]
}
