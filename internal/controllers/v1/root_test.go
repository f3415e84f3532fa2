package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/salvadanaio/internal/controllers/v1"
	"github.com/envelope-zero/salvadanaio/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRootGet() {
	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RootResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.RootLinks{
		Accounts:      "http://example.com/v1/accounts",
		Envelopes:     "http://example.com/v1/envelopes",
		Transactions:  "http://example.com/v1/transactions",
		Distributions: "http://example.com/v1/distributions",
		Categories:    "http://example.com/v1/categories",
		Summary:       "http://example.com/v1/summary",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestRootOptions() {
	r := test.Request(suite.co, suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
