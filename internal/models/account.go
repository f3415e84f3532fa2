package models

import (
	"strings"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is the persisted form of a ledger account.
//
// Names are not unique: a renamed account may carry the name of a closed one.
type Account struct {
	DefaultModel
	Position int             `gorm:"index"`
	Name     string          `gorm:"index"`
	Balance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Closed   bool
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}

func newAccount(position int, a ledger.Account) Account {
	return Account{
		DefaultModel: DefaultModel{
			ID:         a.ID,
			Timestamps: Timestamps{CreatedAt: a.CreatedAt},
		},
		Position: position,
		Name:     a.Name,
		Balance:  a.Balance,
		Closed:   a.Closed,
	}
}

func (a Account) ledger() ledger.Account {
	return ledger.Account{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		Closed:    a.Closed,
	}
}
