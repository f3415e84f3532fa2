package v1

import (
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/gin-gonic/gin"
)

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Accounts      string `json:"accounts" example:"https://example.com/api/v1/accounts"`           // URL of account list endpoint
	Envelopes     string `json:"envelopes" example:"https://example.com/api/v1/envelopes"`         // URL of envelope list endpoint
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/transactions"`   // URL of transaction list endpoint
	Distributions string `json:"distributions" example:"https://example.com/api/v1/distributions"` // URL of the distribution endpoint
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`       // URL of category list endpoint
	Summary       string `json:"summary" example:"https://example.com/api/v1/summary"`             // URL of the summary endpoint
}

// RegisterRoutes registers the v1 API root and all resource routes with
// the RouterGroup that is passed.
func (co *Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterEnvelopeRoutes(r.Group("/envelopes"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterDistributionRoutes(r.Group("/distributions"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterSummaryRoutes(r.Group("/summary"))
}

// GetRoot returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	RootResponse
//	@Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Accounts:      url + "/accounts",
			Envelopes:     url + "/envelopes",
			Transactions:  url + "/transactions",
			Distributions: url + "/distributions",
			Categories:    url + "/categories",
			Summary:       url + "/summary",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
