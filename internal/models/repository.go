package models

import (
	"context"
	"fmt"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// batchSize is the number of rows inserted per statement when saving.
const batchSize = 200

// Repository persists ledger snapshots in the database.
//
// Every Save replaces the complete state within one database transaction,
// so the stored state is always a snapshot that the ledger produced.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a Repository working on db.
func NewRepository(db *gorm.DB) Repository {
	return Repository{db: db}
}

var _ ledger.Repository = Repository{}

// Load reads the stored snapshot. An empty database yields an empty snapshot.
func (r Repository) Load(ctx context.Context) (ledger.Snapshot, error) {
	db := r.db.WithContext(ctx).Order("position ASC")

	var accounts []Account
	if err := db.Find(&accounts).Error; err != nil {
		return ledger.Snapshot{}, err
	}

	var envelopes []Envelope
	if err := db.Find(&envelopes).Error; err != nil {
		return ledger.Snapshot{}, err
	}

	var transactions []Transaction
	if err := db.Find(&transactions).Error; err != nil {
		return ledger.Snapshot{}, err
	}

	var categories []Category
	if err := db.Find(&categories).Error; err != nil {
		return ledger.Snapshot{}, err
	}

	snapshot := ledger.Snapshot{
		Accounts:     make([]ledger.Account, 0, len(accounts)),
		Envelopes:    make([]ledger.Envelope, 0, len(envelopes)),
		Transactions: make([]ledger.Transaction, 0, len(transactions)),
		Categories:   make([]string, 0, len(categories)),
	}

	for _, a := range accounts {
		snapshot.Accounts = append(snapshot.Accounts, a.ledger())
	}

	for _, e := range envelopes {
		envelope, err := e.ledger()
		if err != nil {
			return ledger.Snapshot{}, err
		}
		snapshot.Envelopes = append(snapshot.Envelopes, envelope)
	}

	for _, t := range transactions {
		snapshot.Transactions = append(snapshot.Transactions, t.ledger())
	}

	for _, c := range categories {
		snapshot.Categories = append(snapshot.Categories, c.Name)
	}

	log.Debug().
		Int("accounts", len(snapshot.Accounts)).
		Int("envelopes", len(snapshot.Envelopes)).
		Int("transactions", len(snapshot.Transactions)).
		Msg("Repository: snapshot loaded")

	return snapshot, nil
}

// Save replaces the stored state with the snapshot.
func (r Repository) Save(ctx context.Context, snapshot ledger.Snapshot) error {
	accounts := make([]Account, 0, len(snapshot.Accounts))
	for i, a := range snapshot.Accounts {
		accounts = append(accounts, newAccount(i, a))
	}

	envelopes := make([]Envelope, 0, len(snapshot.Envelopes))
	for i, e := range snapshot.Envelopes {
		envelopes = append(envelopes, newEnvelope(i, e))
	}

	transactions := make([]Transaction, 0, len(snapshot.Transactions))
	for i, t := range snapshot.Transactions {
		transactions = append(transactions, newTransaction(i, t))
	}

	categories := make([]Category, 0, len(snapshot.Categories))
	for i, c := range snapshot.Categories {
		categories = append(categories, Category{Position: i, Name: c})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&Transaction{}, &Envelope{}, &Account{}, &Category{}} {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
			if err != nil {
				return fmt.Errorf("clearing %T: %w", model, err)
			}
		}

		if err := create(tx, accounts); err != nil {
			return err
		}

		if err := create(tx, envelopes); err != nil {
			return err
		}

		if err := create(tx, transactions); err != nil {
			return err
		}

		return create(tx, categories)
	})
}

// create inserts all rows in batches. gorm rejects empty slices, so those are skipped.
func create[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	return tx.CreateInBatches(rows, batchSize).Error
}
