package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/salvadanaio/internal/controllers/v1"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesGetEmpty() {
	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.NotNil(suite.T(), response.Data)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/categories", []string{"Home", " Food ", "Home"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), []string{"Home", "Food"}, response.Data)

	// Adding existing labels keeps the order
	r = test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/categories", []string{"Food", "Travel"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), []string{"Home", "Food", "Travel"}, response.Data)
}

func (suite *TestSuiteStandard) TestCategoriesCreateErrors() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Broken JSON", `["Home"`, http.StatusBadRequest, "contains invalid or un-parseable data"},
		{"Wrong type", `[1]`, http.StatusBadRequest, "cannot unmarshal number"},
		{"Empty name", []string{"Home", "  "}, http.StatusBadRequest, ledger.ErrInvalidReference.Error()},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			assert.Contains(suite.T(), r.Body.String(), tt.err)
		})
	}

	// The valid label of the failed request is not kept
	r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestCategoriesPersisted() {
	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/categories", []string{"Home"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// A new controller loads the ledger from the database
	co := suite.controller()
	r = test.Request(co, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), []string{"Home"}, response.Data)
}

func (suite *TestSuiteStandard) TestCategoriesOptions() {
	r := test.Request(suite.co, suite.T(), http.MethodOptions, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}
