package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RenameAccount renames an account and rewrites every transaction that
// references oldName to reference newName.
func (s *Store) RenameAccount(id uuid.UUID, oldName, newName string) (*Account, error) {
	a, err := s.Account(id)
	if err != nil {
		return nil, err
	}

	if a.Name != oldName {
		return nil, fmt.Errorf("%w: the account with ID %s is not named '%s'", ErrInvalidReference, id, oldName)
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: the account name must not be empty", ErrInvalidReference)
	}

	if newName == oldName {
		return a, nil
	}

	// Closed accounts keep their name, their transactions still reference it
	for _, other := range s.accounts {
		if other != a && other.Name == newName {
			return nil, fmt.Errorf("%w: there already is an account named '%s'", ErrDuplicateName, newName)
		}
	}

	for _, t := range s.transactions {
		if t.Kind.usesAccount() && t.Account == oldName {
			t.Account = newName
		}

		if t.Kind == KindTransfer && t.Target == oldName {
			t.Target = newName
		}
	}

	a.Name = newName
	s.reindex()

	log.Debug().Str("id", id.String()).Str("from", oldName).Str("to", newName).Msg("ledger: account renamed")

	s.changed()
	return a, nil
}

// CloseAccount closes an account.
//
// An account with a balance other than zero can only be closed when
// transferTo names another open account. The full balance is then moved there
// with a transfer transaction before the account is closed.
func (s *Store) CloseAccount(id uuid.UUID, transferTo string) (*Account, error) {
	a, err := s.Account(id)
	if err != nil {
		return nil, err
	}

	if a.Closed {
		return nil, fmt.Errorf("%w: '%s'", ErrAccountAlreadyClosed, a.Name)
	}

	if !a.Balance.IsZero() {
		if transferTo == "" {
			for _, other := range s.accounts {
				if other != a && !other.Closed {
					return nil, ErrTransferRequired
				}
			}
			return nil, ErrNoDestinationAvailable
		}

		destination, err := s.openAccount(transferTo)
		if err != nil {
			return nil, err
		}

		if destination == a {
			return nil, ErrSameSourceAndDestination
		}

		// Negative balances are settled from the destination account
		in := TransactionInput{
			Kind:        KindTransfer,
			Amount:      a.Balance.Abs(),
			Description: fmt.Sprintf("Closing balance of %s", a.Name),
			Account:     a.Name,
			Target:      destination.Name,
		}
		if a.Balance.IsNegative() {
			in.Account, in.Target = in.Target, in.Account
		}

		if _, err := s.record(in); err != nil {
			return nil, err
		}
	}

	a.Closed = true
	log.Debug().Str("id", id.String()).Str("name", a.Name).Msg("ledger: account closed")

	s.changed()
	return a, nil
}

// ReopenAccount clears the closed flag of an account. Balances are not touched.
func (s *Store) ReopenAccount(id uuid.UUID) (*Account, error) {
	a, err := s.Account(id)
	if err != nil {
		return nil, err
	}

	if !a.Closed {
		return a, nil
	}

	for _, other := range s.accounts {
		if other != a && !other.Closed && other.Name == a.Name {
			return nil, fmt.Errorf("%w: there already is an open account named '%s'", ErrDuplicateName, a.Name)
		}
	}

	a.Closed = false
	s.reindex()

	s.changed()
	return a, nil
}
