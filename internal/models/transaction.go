package models

import (
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of a ledger transaction.
//
// Account and Target are names, not foreign keys. They may reference
// accounts or envelopes that do not exist anymore.
type Transaction struct {
	DefaultModel
	Position    int `gorm:"index"`
	Kind        ledger.Kind
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Category    string
	Date        time.Time `gorm:"index"`
	Account     string
	Target      string
}

func newTransaction(position int, t ledger.Transaction) Transaction {
	return Transaction{
		DefaultModel: DefaultModel{ID: t.ID},
		Position:     position,
		Kind:         t.Kind,
		Amount:       t.Amount,
		Description:  t.Description,
		Category:     t.Category,
		Date:         t.Date.UTC(),
		Account:      t.Account,
		Target:       t.Target,
	}
}

func (t Transaction) ledger() ledger.Transaction {
	return ledger.Transaction{
		ID:          t.ID,
		Kind:        t.Kind,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date.UTC(),
		Account:     t.Account,
		Target:      t.Target,
	}
}
