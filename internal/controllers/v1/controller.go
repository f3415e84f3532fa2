package v1

import (
	"context"
	"fmt"
	"sync"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"
)

// Controller serves the ledger over HTTP.
//
// The ledger is not safe for concurrent use, all access goes through
// the mutex. After every successful mutation, the new state is saved
// to the repository before the response is sent.
type Controller struct {
	mu       sync.Mutex
	store    *ledger.Store
	repo     ledger.Repository
	currency currency.Unit

	// pending is the latest state reported by the store that is not saved yet
	pending   *ledger.Snapshot
	listeners []func(ledger.Snapshot)
}

// New loads the ledger state from repo and returns a Controller for it.
func New(ctx context.Context, repo ledger.Repository, unit currency.Unit, opts ...ledger.Option) (*Controller, error) {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	store := ledger.New(opts...)
	store.Restore(snapshot)

	log.Info().
		Int("accounts", len(snapshot.Accounts)).
		Int("envelopes", len(snapshot.Envelopes)).
		Int("transactions", len(snapshot.Transactions)).
		Str("currency", unit.String()).
		Msg("Ledger")

	co := &Controller{
		store:    store,
		repo:     repo,
		currency: unit,
	}

	store.OnChange(func(s ledger.Snapshot) {
		co.pending = &s
	})

	return co, nil
}

// OnChange registers f to be called with the new state after every
// mutation that was saved. f is called once right away with the current state.
func (co *Controller) OnChange(f func(ledger.Snapshot)) {
	co.mu.Lock()
	defer co.mu.Unlock()

	co.listeners = append(co.listeners, f)
	f(co.store.Snapshot())
}

// read runs f with exclusive access to the ledger.
func (co *Controller) read(f func(s *ledger.Store)) {
	co.mu.Lock()
	defer co.mu.Unlock()

	f(co.store)
}

// mutate runs f with exclusive access to the ledger and saves the result.
//
// Ledger operations either succeed or leave the state untouched. If saving
// fails, the ledger is reset to the state before f ran so that memory and
// database do not diverge. Nothing is saved if f did not change the ledger.
func (co *Controller) mutate(ctx context.Context, f func(s *ledger.Store) error) error {
	co.mu.Lock()
	defer co.mu.Unlock()

	before := co.store.Snapshot()
	co.pending = nil

	err := f(co.store)
	if err != nil {
		// f may consist of several ledger operations, some of which succeeded
		if co.pending != nil {
			co.store.Restore(before)
			co.pending = nil
		}
		return err
	}

	if co.pending == nil {
		return nil
	}

	snapshot := *co.pending
	co.pending = nil

	if err := co.repo.Save(ctx, snapshot); err != nil {
		log.Error().Err(err).Msg("Ledger state could not be saved, rolling back")
		co.store.Restore(before)
		return models.ErrGeneral
	}

	for _, l := range co.listeners {
		l(snapshot)
	}

	return nil
}
