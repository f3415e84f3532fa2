package v1

import (
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Currency           string          `json:"currency" example:"EUR"`          // ISO 4217 code of all amounts
	TotalBalance       decimal.Decimal `json:"totalBalance" example:"1450"`     // Sum of the balances of all open accounts
	TotalEnvelopes     decimal.Decimal `json:"totalEnvelopes" example:"150"`    // Sum of the amounts in all envelopes
	AvailableBalance   decimal.Decimal `json:"availableBalance" example:"1600"` // Open account balances plus positive envelope amounts
	OpenAccounts       int             `json:"openAccounts" example:"2"`        // Number of open accounts
	OverdrawnEnvelopes []Envelope      `json:"overdrawnEnvelopes"`              // Envelopes with a negative amount
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`  // The summary
	Error *string  `json:"error"` // The error, if any occurred
}

// RegisterSummaryRoutes registers the routes for the summary with
// the RouterGroup that is passed.
func (co *Controller) RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", co.GetSummary)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get summary
// @Description	Returns the totals of the ledger
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Router			/v1/summary [get]
func (co *Controller) GetSummary(c *gin.Context) {
	data := Summary{
		Currency:           co.currency.String(),
		OverdrawnEnvelopes: make([]Envelope, 0),
	}

	co.read(func(s *ledger.Store) {
		data.TotalBalance = s.TotalBalance()
		data.TotalEnvelopes = s.TotalEnvelopes()
		data.AvailableBalance = s.AvailableBalance()

		for _, a := range s.Accounts() {
			if !a.Closed {
				data.OpenAccounts++
			}
		}

		for _, e := range s.OverdrawnEnvelopes() {
			data.OverdrawnEnvelopes = append(data.OverdrawnEnvelopes, newEnvelope(c, e))
		}
	})

	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}
