package ledger

import "errors"

var (
	ErrInvalidReference         = errors.New("there is no matching account or envelope")
	ErrAccountClosed            = errors.New("the account is closed")
	ErrAccountAlreadyClosed     = errors.New("the account is already closed")
	ErrDuplicateName            = errors.New("the name is already in use")
	ErrTransferRequired         = errors.New("the account balance is not zero, a destination account for the remaining balance is required")
	ErrNoDestinationAvailable   = errors.New("the account balance is not zero and there is no other open account to transfer it to")
	ErrInvalidAmount            = errors.New("the amount must be larger than zero")
	ErrTransactionNotFound      = errors.New("there is no transaction with this ID")
	ErrSameSourceAndDestination = errors.New("source and destination of a transfer must be different")
	ErrInvalidEnvelope          = errors.New("the envelope configuration is invalid")
	ErrInvalidKind              = errors.New("the transaction kind is invalid")
	ErrDistributionMismatch     = errors.New("the distribution does not match the total amount")
)
