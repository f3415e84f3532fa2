package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the kind of a Transaction. It determines which balances the
// transaction affects and in which direction.
type Kind string

const (
	KindExpense          Kind = "expense"
	KindIncome           Kind = "income"
	KindSalary           Kind = "salary"
	KindDistribution     Kind = "distribution"
	KindTransfer         Kind = "transfer"
	KindTransferEnvelope Kind = "transferEnvelope"
)

// Kinds lists all valid transaction kinds.
var Kinds = []Kind{KindExpense, KindIncome, KindSalary, KindDistribution, KindTransfer, KindTransferEnvelope}

// Transaction is a single money movement.
//
// Account is the name of the primary account, or of the source envelope for
// envelope to envelope transfers. Target is the name of the envelope, or of the
// destination account for transfers between accounts. The Amount is always
// positive, the direction is derived from the Kind.
type Transaction struct {
	ID          uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
	Account     string
	Target      string
}

// TransactionInput contains the caller supplied values for a transaction.
//
// If Date is zero, the clock of the store is used.
type TransactionInput struct {
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
	Account     string
	Target      string
}

// Valid reports if k is a known transaction kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// usesAccount is true for all kinds where Account refers to an account.
func (k Kind) usesAccount() bool {
	return k != KindTransferEnvelope
}

// IsIncome is true for kinds that bring new money into an account.
func (k Kind) IsIncome() bool {
	return k == KindIncome || k == KindSalary
}
