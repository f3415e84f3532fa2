package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/salvadanaio/internal/controllers/v1"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSummaryEmpty() {
	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "EUR", response.Data.Currency)
	assertDecimal(suite.T(), "0", response.Data.TotalBalance)
	assertDecimal(suite.T(), "0", response.Data.TotalEnvelopes)
	assertDecimal(suite.T(), "0", response.Data.AvailableBalance)
	assert.Equal(suite.T(), 0, response.Data.OpenAccounts)
	assert.NotNil(suite.T(), response.Data.OverdrawnEnvelopes)
	assert.Len(suite.T(), response.Data.OverdrawnEnvelopes, 0)
}

func (suite *TestSuiteStandard) TestSummary() {
	suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}, OpeningBalance: d("1000")})
	cash := suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Cash"}})

	r := test.Request(suite.co, suite.T(), http.MethodPost, cash.Data.Links.Close, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{
		EnvelopeEditable: v1.EnvelopeEditable{Name: "Groceries", Kind: ledger.KindRecurringRefill, MonthlyRefill: d("400")},
		InitialAmount:    d("100"),
		SourceAccount:    "Checking",
	})
	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{
		EnvelopeEditable: v1.EnvelopeEditable{Name: "Fun"},
		InitialAmount:    d("200"),
		SourceAccount:    "Checking",
	})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:        ledger.KindExpense,
		Amount:      d("150"),
		Description: "Supermarket",
		Account:     "Checking",
		Target:      "Groceries",
	})

	r = test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assertDecimal(suite.T(), "550", response.Data.TotalBalance)
	assertDecimal(suite.T(), "150", response.Data.TotalEnvelopes)

	// Overdrawn envelopes do not reduce the available balance
	assertDecimal(suite.T(), "750", response.Data.AvailableBalance)
	assert.Equal(suite.T(), 1, response.Data.OpenAccounts)

	require.Len(suite.T(), response.Data.OverdrawnEnvelopes, 1)
	assert.Equal(suite.T(), "Groceries", response.Data.OverdrawnEnvelopes[0].Name)
	assertDecimal(suite.T(), "-50", response.Data.OverdrawnEnvelopes[0].CurrentAmount)
	assert.Equal(suite.T(), "http://example.com/v1/envelopes/"+response.Data.OverdrawnEnvelopes[0].ID.String(), response.Data.OverdrawnEnvelopes[0].Links.Self)
}

func (suite *TestSuiteStandard) TestSummaryOptions() {
	r := test.Request(suite.co, suite.T(), http.MethodOptions, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
