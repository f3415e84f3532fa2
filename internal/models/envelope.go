package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope is the persisted form of a ledger envelope.
//
// The goal variant is flattened into Kind and the columns that belong to it.
// Columns of other variants are zero.
type Envelope struct {
	DefaultModel
	Position      int    `gorm:"index"`
	Name          string `gorm:"uniqueIndex"`
	Category      string
	Color         string
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Kind          ledger.EnvelopeKind
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TargetDate    *time.Time
	MonthlyRefill decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)

	if e.TargetDate != nil {
		t := e.TargetDate.UTC()
		e.TargetDate = &t
	}

	return nil
}

func newEnvelope(position int, e ledger.Envelope) Envelope {
	m := Envelope{
		DefaultModel: DefaultModel{
			ID:         e.ID,
			Timestamps: Timestamps{CreatedAt: e.CreatedAt},
		},
		Position:      position,
		Name:          e.Name,
		Category:      e.Category,
		Color:         e.Color,
		CurrentAmount: e.CurrentAmount,
		Kind:          e.Kind(),
	}

	switch g := e.Goal.(type) {
	case ledger.FixedTarget:
		m.TargetAmount = g.Amount
		if g.Date != nil {
			d := *g.Date
			m.TargetDate = &d
		}
	case ledger.RecurringRefill:
		m.MonthlyRefill = g.MonthlyRefill
	}

	return m
}

func (e Envelope) ledger() (ledger.Envelope, error) {
	var goal ledger.Goal

	switch e.Kind {
	case ledger.KindFixedTarget:
		goal = ledger.FixedTarget{Amount: e.TargetAmount, Date: e.TargetDate}
	case ledger.KindRecurringRefill:
		goal = ledger.RecurringRefill{MonthlyRefill: e.MonthlyRefill}
	case ledger.KindOpenEnded:
		goal = ledger.OpenEnded{}
	default:
		return ledger.Envelope{}, fmt.Errorf("envelope %s has unknown kind '%s'", e.ID, e.Kind)
	}

	return ledger.Envelope{
		ID:            e.ID,
		Name:          e.Name,
		Category:      e.Category,
		Color:         e.Color,
		CurrentAmount: e.CurrentAmount,
		CreatedAt:     e.CreatedAt,
		Goal:          goal,
	}, nil
}
