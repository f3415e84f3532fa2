package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/envelope-zero/salvadanaio/internal/controllers/v1"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/envelope-zero/salvadanaio/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestEnvelopesCreate() {
	account := suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}, OpeningBalance: d("1000")})

	date := now.AddDate(0, 2, 0)
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{
		EnvelopeEditable: v1.EnvelopeEditable{
			Name:         "Holiday",
			Category:     "Fun",
			Color:        "#8ad4a0",
			Kind:         ledger.KindFixedTarget,
			TargetAmount: d("1200"),
			TargetDate:   &date,
		},
		InitialAmount: d("200"),
		SourceAccount: "Checking",
	})

	assert.Equal(suite.T(), "Holiday", e.Data.Name)
	assert.Equal(suite.T(), ledger.KindFixedTarget, e.Data.Kind)
	assertDecimal(suite.T(), "200", e.Data.CurrentAmount)
	assertDecimal(suite.T(), "1000", e.Data.Needed)
	assert.False(suite.T(), e.Data.Reached)
	assert.False(suite.T(), e.Data.Overdrawn)
	require.NotNil(suite.T(), e.Data.TargetDate)
	assert.True(suite.T(), date.Equal(*e.Data.TargetDate))
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/envelopes/%s", e.Data.ID), e.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/transactions?envelope=Holiday", e.Data.Links.Transactions)

	// The initial amount is taken from the account
	assertDecimal(suite.T(), "800", suite.getAccount(suite.T(), account.Data.Links.Self).Balance)

	// Without a kind, envelopes are open ended
	open := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{})
	assert.Equal(suite.T(), ledger.KindOpenEnded, open.Data.Kind)
}

func (suite *TestSuiteStandard) TestEnvelopesCreateErrors() {
	suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}})
	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Rent", Kind: ledger.KindRecurringRefill, MonthlyRefill: d("800")}})

	tests := []struct {
		name     string
		envelope v1.EnvelopeCreate
		err      error
	}{
		{"Duplicate name", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Rent"}}, ledger.ErrDuplicateName},
		{"Unknown kind", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "A", Kind: "jar"}}, nil},
		{"Target missing", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "B", Kind: ledger.KindFixedTarget}}, ledger.ErrInvalidEnvelope},
		{"Refill negative", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "C", Kind: ledger.KindRecurringRefill, MonthlyRefill: d("-5")}}, ledger.ErrInvalidEnvelope},
		{"Initial amount without account", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "D"}, InitialAmount: d("5")}, ledger.ErrInvalidReference},
		{"Negative initial amount", v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "E"}, InitialAmount: d("-5"), SourceAccount: "Checking"}, ledger.ErrInvalidAmount},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/envelopes", []v1.EnvelopeCreate{tt.envelope})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.EnvelopeCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			require.NotNil(t, response.Data[0].Error)

			if tt.err != nil {
				assert.Contains(t, *response.Data[0].Error, tt.err.Error())
			} else {
				assert.Contains(t, *response.Data[0].Error, "the envelope kind must be one of")
			}
		})
	}

	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/envelopes", "")
	var response v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1, "Failed creations must not leave envelopes behind")
}

func (suite *TestSuiteStandard) TestEnvelopesGet() {
	suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}, OpeningBalance: d("100")})
	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Groceries", Category: "Home"}})
	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Cinema", Category: "Fun"}})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{Kind: ledger.KindExpense, Amount: d("12"), Account: "Checking", Target: "Cinema"})

	tests := []struct {
		query    string
		expected []string
		status   int
	}{
		{"", []string{"Groceries", "Cinema"}, http.StatusOK},
		{"category=Home", []string{"Groceries"}, http.StatusOK},
		{"overdrawn=true", []string{"Cinema"}, http.StatusOK},
		{"overdrawn=false&category=Fun", nil, http.StatusOK},
		{"overdrawn=often", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, "http://example.com/v1/envelopes?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.EnvelopeListResponse
			test.DecodeResponse(t, &r, &response)

			var names []string
			for _, e := range response.Data {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopesGetSingle() {
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Envelope", e.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Envelope with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"OPTIONS Existing Envelope", e.Data.ID.String(), http.StatusNoContent, http.MethodOptions},
		{"OPTIONS No Envelope with this ID", uuid.New().String(), http.StatusNotFound, http.MethodOptions},
		{"OPTIONS Invalid ID", "notaUUID", http.StatusBadRequest, http.MethodOptions},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, tt.method, fmt.Sprintf("http://example.com/v1/envelopes/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r := test.Request(suite.co, suite.T(), http.MethodOptions, "http://example.com/v1/envelopes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestEnvelopesUpdate() {
	suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}, OpeningBalance: d("500")})
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{
		EnvelopeEditable: v1.EnvelopeEditable{Name: "Car", Category: "Transport", Kind: ledger.KindFixedTarget, TargetAmount: d("3000")},
		InitialAmount:    d("100"),
		SourceAccount:    "Checking",
	})
	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Taken"}})

	// Only the name is changed, everything else is kept
	r := test.Request(suite.co, suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"name": "Vehicle"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Vehicle", response.Data.Name)
	assert.Equal(suite.T(), "Transport", response.Data.Category)
	assert.Equal(suite.T(), ledger.KindFixedTarget, response.Data.Kind)
	assertDecimal(suite.T(), "3000", response.Data.TargetAmount)
	assertDecimal(suite.T(), "100", response.Data.CurrentAmount)
	assert.Equal(suite.T(), "http://example.com/v1/transactions?envelope=Vehicle", response.Data.Links.Transactions)

	// The initial distribution follows the rename
	r = test.Request(suite.co, suite.T(), http.MethodGet, response.Data.Links.Transactions, "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	require.Len(suite.T(), transactions.Data, 1)
	assert.Equal(suite.T(), "Vehicle", transactions.Data[0].Target)

	// Switching the kind
	r = test.Request(suite.co, suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"kind": "recurringRefill", "monthlyRefill": "150"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), ledger.KindRecurringRefill, response.Data.Kind)
	assertDecimal(suite.T(), "50", response.Data.Needed)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Duplicate name", map[string]any{"name": "Taken"}, http.StatusBadRequest},
		{"Unknown kind", map[string]any{"kind": "jar"}, http.StatusBadRequest},
		{"Invalid refill", map[string]any{"monthlyRefill": "0"}, http.StatusBadRequest},
		{"Broken body", `{ "name": 5 }`, http.StatusBadRequest},
		{"Not JSON", `name=5`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, e.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r = test.Request(suite.co, suite.T(), http.MethodPatch, "http://example.com/v1/envelopes/"+uuid.NewString(), map[string]any{"name": "X"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestEnvelopesUpdateTargetDate verifies that the target date of the
// response does not share memory with the ledger.
func (suite *TestSuiteStandard) TestEnvelopesUpdateTargetDate() {
	date := now.AddDate(0, 1, 0)
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{
		EnvelopeEditable: v1.EnvelopeEditable{Kind: ledger.KindFixedTarget, TargetAmount: d("10"), TargetDate: &date},
	})

	later := now.AddDate(0, 3, 0)
	r := test.Request(suite.co, suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"targetDate": later.Format(time.RFC3339)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// A failing update must not change the date either
	r = test.Request(suite.co, suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"targetDate": now.Format(time.RFC3339), "targetAmount": "-1"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	envelope := suite.getEnvelope(suite.T(), e.Data.Links.Self)
	require.NotNil(suite.T(), envelope.TargetDate)
	assert.True(suite.T(), later.Equal(*envelope.TargetDate))
}

func (suite *TestSuiteStandard) TestEnvelopesDelete() {
	suite.createTestAccount(suite.T(), v1.AccountCreate{AccountEditable: v1.AccountEditable{Name: "Checking"}, OpeningBalance: d("100")})
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Gifts"}, InitialAmount: d("20"), SourceAccount: "Checking"})

	r := test.Request(suite.co, suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.co, suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Transactions keep their textual reference
	r = test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/transactions?envelope=Gifts", "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	assert.Len(suite.T(), transactions.Data, 1)

	r = test.Request(suite.co, suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.co, suite.T(), http.MethodDelete, "http://example.com/v1/envelopes/notaUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestEnvelopesDBClosed() {
	e := suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{EnvelopeEditable: v1.EnvelopeEditable{Name: "Books"}})

	suite.CloseDB()

	suite.createTestEnvelope(suite.T(), v1.EnvelopeCreate{}, http.StatusInternalServerError)

	r := test.Request(suite.co, suite.T(), http.MethodPatch, e.Data.Links.Self, map[string]any{"name": "Comics"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	assert.Contains(suite.T(), r.Body.String(), models.ErrGeneral.Error())

	r = test.Request(suite.co, suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	assert.Equal(suite.T(), "Books", suite.getEnvelope(suite.T(), e.Data.Links.Self).Name)
}
