package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a named pool of liquid money, e.g. a bank account or a wallet.
//
// The Balance is maintained incrementally by the transactions applied to the
// account. It is never recomputed from the transaction history.
type Account struct {
	ID        uuid.UUID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
	Closed    bool
}
