package models_test

import (
	"context"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/shopspring/decimal"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// populatedStore returns a store with every kind of entity in it.
func (suite *TestSuiteStandard) populatedStore() *ledger.Store {
	s := ledger.New(ledger.WithClock(ledger.FixedClock(now)))
	require := suite.Require()

	_, err := s.CreateAccount("Checking", decimal.RequireFromString("1500.50"))
	require.Nil(err)

	savings, err := s.CreateAccount("Savings", decimal.RequireFromString("300"))
	require.Nil(err)

	deadline := now.AddDate(0, 2, 0)
	envelopes := []ledger.EnvelopeInput{
		{Name: "Food", Category: "Home", Color: "#ff0000", Goal: ledger.RecurringRefill{MonthlyRefill: decimal.RequireFromString("400")}},
		{Name: "Trip", Goal: ledger.FixedTarget{Amount: decimal.RequireFromString("1200"), Date: &deadline}},
		{Name: "Bike", Goal: ledger.FixedTarget{Amount: decimal.RequireFromString("800")}},
		{Name: "Rainy day", Goal: ledger.OpenEnded{}},
	}
	for _, in := range envelopes {
		_, err := s.CreateEnvelope(in)
		require.Nil(err)
	}

	require.Nil(s.AddCategory("Home"))
	require.Nil(s.AddCategory("Travel"))

	_, err = s.ApplyDistribution(ledger.DistributionInput{
		Kind:    ledger.KindSalary,
		Account: "Checking",
		Total:   decimal.RequireFromString("1000"),
		Distribution: ledger.Distribution{
			"Food":      decimal.RequireFromString("400"),
			"Trip":      decimal.RequireFromString("500.25"),
			"Rainy day": decimal.RequireFromString("99.75"),
		},
	})
	require.Nil(err)

	_, err = s.RecordTransaction(ledger.TransactionInput{
		Kind:        ledger.KindExpense,
		Amount:      decimal.RequireFromString("42.10"),
		Description: "Groceries",
		Category:    "Home",
		Date:        now.Add(time.Hour),
		Account:     "Checking",
		Target:      "Food",
	})
	require.Nil(err)

	_, err = s.CloseAccount(savings.ID, "Checking")
	require.Nil(err)

	return s
}

// assertSnapshotEqual compares two snapshots by value.
//
// Decimals and times are compared with their Equal methods since
// the database does not keep their internal representation.
func (suite *TestSuiteStandard) assertSnapshotEqual(expected, actual ledger.Snapshot) {
	assert := suite.Assert()

	suite.Require().Len(actual.Accounts, len(expected.Accounts))
	for i, e := range expected.Accounts {
		a := actual.Accounts[i]
		assert.Equal(e.ID, a.ID)
		assert.Equal(e.Name, a.Name)
		assert.Equal(e.Closed, a.Closed)
		assert.True(e.Balance.Equal(a.Balance), "balance of %s: expected %s, got %s", e.Name, e.Balance, a.Balance)
		assert.True(e.CreatedAt.Equal(a.CreatedAt))
	}

	suite.Require().Len(actual.Envelopes, len(expected.Envelopes))
	for i, e := range expected.Envelopes {
		a := actual.Envelopes[i]
		assert.Equal(e.ID, a.ID)
		assert.Equal(e.Name, a.Name)
		assert.Equal(e.Category, a.Category)
		assert.Equal(e.Color, a.Color)
		assert.Equal(e.Kind(), a.Kind())
		assert.True(e.CurrentAmount.Equal(a.CurrentAmount), "amount of %s: expected %s, got %s", e.Name, e.CurrentAmount, a.CurrentAmount)

		switch g := e.Goal.(type) {
		case ledger.FixedTarget:
			actual := a.Goal.(ledger.FixedTarget)
			assert.True(g.Amount.Equal(actual.Amount))
			if g.Date == nil {
				assert.Nil(actual.Date)
			} else {
				suite.Require().NotNil(actual.Date)
				assert.True(g.Date.Equal(*actual.Date))
			}
		case ledger.RecurringRefill:
			assert.True(g.MonthlyRefill.Equal(a.Goal.(ledger.RecurringRefill).MonthlyRefill))
		}
	}

	suite.Require().Len(actual.Transactions, len(expected.Transactions))
	for i, e := range expected.Transactions {
		a := actual.Transactions[i]
		assert.Equal(e.ID, a.ID)
		assert.Equal(e.Kind, a.Kind)
		assert.Equal(e.Description, a.Description)
		assert.Equal(e.Category, a.Category)
		assert.Equal(e.Account, a.Account)
		assert.Equal(e.Target, a.Target)
		assert.True(e.Amount.Equal(a.Amount))
		assert.True(e.Date.Equal(a.Date))
	}

	assert.Equal(expected.Categories, actual.Categories)
}

func (suite *TestSuiteStandard) TestRepositoryRoundTrip() {
	s := suite.populatedStore()
	repo := models.NewRepository(models.DB)

	snapshot := s.Snapshot()
	suite.Require().Nil(repo.Save(context.Background(), snapshot))

	loaded, err := repo.Load(context.Background())
	suite.Require().Nil(err)
	suite.assertSnapshotEqual(snapshot, loaded)

	// A restored store continues where the original left off
	restored := ledger.New(ledger.WithClock(ledger.FixedClock(now)))
	restored.Restore(loaded)
	suite.Assert().True(s.TotalBalance().Equal(restored.TotalBalance()))
	suite.Assert().True(s.TotalEnvelopes().Equal(restored.TotalEnvelopes()))
	suite.Assert().True(restored.FindAccount("Savings").Closed)
}

func (suite *TestSuiteStandard) TestRepositorySaveReplaces() {
	s := suite.populatedStore()
	repo := models.NewRepository(models.DB)
	suite.Require().Nil(repo.Save(context.Background(), s.Snapshot()))

	smaller := ledger.New(ledger.WithClock(ledger.FixedClock(now)))
	_, err := smaller.CreateAccount("Wallet", decimal.RequireFromString("20"))
	suite.Require().Nil(err)
	suite.Require().Nil(repo.Save(context.Background(), smaller.Snapshot()))

	loaded, err := repo.Load(context.Background())
	suite.Require().Nil(err)
	suite.assertSnapshotEqual(smaller.Snapshot(), loaded)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Envelope{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestRepositoryLoadEmpty() {
	loaded, err := models.NewRepository(models.DB).Load(context.Background())
	suite.Require().Nil(err)

	suite.Assert().Empty(loaded.Accounts)
	suite.Assert().Empty(loaded.Envelopes)
	suite.Assert().Empty(loaded.Transactions)
	suite.Assert().Empty(loaded.Categories)
}

func (suite *TestSuiteStandard) TestRepositoryUnknownEnvelopeKind() {
	suite.Require().Nil(models.DB.Create(&models.Envelope{Name: "Broken", Kind: "mystery"}).Error)

	_, err := models.NewRepository(models.DB).Load(context.Background())
	suite.Assert().ErrorContains(err, "unknown kind 'mystery'")
}

func (suite *TestSuiteStandard) TestRepositoryDatabaseClosed() {
	repo := models.NewRepository(models.DB)
	suite.CloseDB()

	_, err := repo.Load(context.Background())
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	err = repo.Save(context.Background(), ledger.Snapshot{})
	suite.Assert().NotNil(err)
}
