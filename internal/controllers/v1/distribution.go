package v1

import (
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDistributionRoutes registers the routes for distributions with
// the RouterGroup that is passed.
func (co *Controller) RegisterDistributionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDistribution)
	r.POST("", co.ApplyDistribution)

	r.OPTIONS("/automatic", OptionsDistributionView)
	r.GET("/automatic", co.GetAutomaticDistribution)

	r.OPTIONS("/equal", OptionsDistributionView)
	r.GET("/equal", co.GetEqualDistribution)

	r.OPTIONS("/suggestions", OptionsDistributionView)
	r.GET("/suggestions", co.GetDistributionSuggestions)

	r.OPTIONS("/validate", OptionsDistribution)
	r.POST("/validate", ValidateDistribution)
}

// decimalQuery parses the query parameter key as decimal.
//
// The parameter is required. If it is missing or not a number, errInvalid is returned.
func decimalQuery(c *gin.Context, key string, errInvalid error) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Query(key))
	if err != nil {
		return decimal.Zero, errInvalid
	}
	return d, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Distributions
// @Success		204
// @Router			/v1/distributions [options]
// @Router			/v1/distributions/validate [options]
func OptionsDistribution(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Distributions
// @Success		204
// @Router			/v1/distributions/automatic [options]
// @Router			/v1/distributions/equal [options]
// @Router			/v1/distributions/suggestions [options]
func OptionsDistributionView(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Automatic distribution
// @Description	Computes how the total would be split across all envelopes. Nothing is recorded.
// @Tags			Distributions
// @Produce		json
// @Success		200		{object}	DistributionResponse
// @Failure		400		{object}	DistributionResponse
// @Param			total	query		string	true	"The amount to distribute"
// @Router			/v1/distributions/automatic [get]
func (co *Controller) GetAutomaticDistribution(c *gin.Context) {
	total, err := decimalQuery(c, "total", errTotalQueryParameter)
	if err != nil {
		c.JSON(status(err), DistributionResponse{Error: errorString(err)})
		return
	}

	var data ledger.Distribution
	co.read(func(s *ledger.Store) {
		data = s.ComputeAutomaticDistribution(total)
	})

	c.JSON(http.StatusOK, DistributionResponse{Data: data})
}

// @Summary		Equal distribution
// @Description	Splits the total equally across the named envelopes, or all envelopes if none are named. Shares are exact to the cent.
// @Tags			Distributions
// @Produce		json
// @Success		200			{object}	DistributionResponse
// @Failure		400			{object}	DistributionResponse
// @Param			total		query		string		true	"The amount to distribute"
// @Param			envelope	query		[]string	false	"Names of the envelopes"
// @Router			/v1/distributions/equal [get]
func (co *Controller) GetEqualDistribution(c *gin.Context) {
	total, err := decimalQuery(c, "total", errTotalQueryParameter)
	if err != nil {
		c.JSON(status(err), DistributionResponse{Error: errorString(err)})
		return
	}

	names := c.QueryArray("envelope")

	var data ledger.Distribution
	co.read(func(s *ledger.Store) {
		if len(names) == 0 {
			for _, e := range s.Envelopes() {
				names = append(names, e.Name)
			}
		}
		data = ledger.EqualSplit(total, names)
	})

	c.JSON(http.StatusOK, DistributionResponse{Data: data})
}

// @Summary		Distribution suggestions
// @Description	Recommends amounts for envelopes that need money soon
// @Tags			Distributions
// @Produce		json
// @Success		200		{object}	SuggestionListResponse
// @Failure		400		{object}	SuggestionListResponse
// @Param			amount	query		string	true	"The amount available"
// @Router			/v1/distributions/suggestions [get]
func (co *Controller) GetDistributionSuggestions(c *gin.Context) {
	amount, err := decimalQuery(c, "amount", errAmountQueryParameter)
	if err != nil {
		c.JSON(status(err), SuggestionListResponse{Error: errorString(err)})
		return
	}

	data := make([]Suggestion, 0)
	co.read(func(s *ledger.Store) {
		for _, suggestion := range s.DistributionSuggestions(amount) {
			data = append(data, Suggestion(suggestion))
		}
	})

	c.JSON(http.StatusOK, SuggestionListResponse{Data: data})
}

// @Summary		Validate distribution
// @Description	Verifies that a distribution adds up to the total within one cent
// @Tags			Distributions
// @Accept			json
// @Produce		json
// @Success		200				{object}	ValidationResponse
// @Failure		400				{object}	ValidationResponse
// @Param			distribution	body		DistributionValidate	true	"Distribution and total"
// @Router			/v1/distributions/validate [post]
func ValidateDistribution(c *gin.Context) {
	var data DistributionValidate
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(status(err), ValidationResponse{Error: errorString(err)})
		return
	}

	v := Validation(ledger.ValidateDistribution(data.Distribution, data.Total))
	c.JSON(http.StatusOK, ValidationResponse{Data: &v})
}

// @Summary		Apply distribution
// @Description	Records the income for the total and one distribution transaction per envelope. Either all transactions are recorded or none. Without a distribution, the automatic distribution is used and the part no envelope receives stays in the account.
// @Tags			Distributions
// @Accept			json
// @Produce		json
// @Success		201				{object}	DistributionApplyResponse
// @Failure		400				{object}	DistributionApplyResponse
// @Failure		500				{object}	DistributionApplyResponse
// @Param			distribution	body		DistributionEditable	true	"Distribution"
// @Router			/v1/distributions [post]
func (co *Controller) ApplyDistribution(c *gin.Context) {
	var editable DistributionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), DistributionApplyResponse{Error: errorString(err)})
		return
	}

	data := make([]Transaction, 0)
	unallocated := decimal.Zero
	err := co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		in := editable.input()

		var transactions []*ledger.Transaction
		var err error
		if in.Distribution == nil {
			transactions, unallocated, err = s.ApplyAutomaticDistribution(in)
		} else {
			transactions, err = s.ApplyDistribution(in)
		}
		if err != nil {
			return err
		}

		for _, t := range transactions {
			data = append(data, newTransaction(c, t))
		}
		return nil
	})
	if err != nil {
		c.JSON(status(err), DistributionApplyResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusCreated, DistributionApplyResponse{Data: data, Unallocated: unallocated})
}
