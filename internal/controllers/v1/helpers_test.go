package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/salvadanaio/internal/controllers/v1"
	"github.com/envelope-zero/salvadanaio/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s. %v", expected, actual, msgAndArgs)
}

func (suite *TestSuiteStandard) createTestAccount(t *testing.T, a v1.AccountCreate, expectedStatus ...int) v1.AccountResponse {
	if a.Name == "" {
		a.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountCreate{a})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.AccountResponse{}
}

func (suite *TestSuiteStandard) createTestEnvelope(t *testing.T, e v1.EnvelopeCreate, expectedStatus ...int) v1.EnvelopeResponse {
	if e.Name == "" {
		e.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/envelopes", []v1.EnvelopeCreate{e})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.EnvelopeCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.EnvelopeResponse{}
}

func (suite *TestSuiteStandard) createTestTransaction(t *testing.T, editable v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{editable})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.TransactionResponse{}
}

// getAccount returns the current state of the account.
func (suite *TestSuiteStandard) getAccount(t *testing.T, self string) v1.Account {
	r := test.Request(suite.co, t, http.MethodGet, self, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(t, &r, &response)
	return *response.Data
}

// getEnvelope returns the current state of the envelope.
func (suite *TestSuiteStandard) getEnvelope(t *testing.T, self string) v1.Envelope {
	r := test.Request(suite.co, t, http.MethodGet, self, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.EnvelopeResponse
	test.DecodeResponse(t, &r, &response)
	return *response.Data
}
