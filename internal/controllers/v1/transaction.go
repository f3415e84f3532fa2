package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co *Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func (co *Controller) OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err == nil {
		co.read(func(s *ledger.Store) {
			_, err = s.Transaction(uri.ID.UUID)
		})
	}

	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transactions
// @Description	Records transactions from the list of transactions and applies their effect on balances
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func (co *Controller) CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), TransactionCreateResponse{Error: errorString(err)})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		var data Transaction
		err := co.mutate(c.Request.Context(), func(s *ledger.Store) error {
			t, err := s.RecordTransaction(editable.input())
			if err != nil {
				return err
			}

			data = newTransaction(c, t)
			return nil
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			account		query	string	false	"Filter by name of a referenced account"
// @Param			envelope	query	string	false	"Filter by name of a referenced envelope"
// @Param			kind		query	string	false	"Filter by kind"
// @Param			category	query	string	false	"Filter by category"
// @Param			description	query	string	false	"Filter by description. Supports * as wildcard"
// @Param			fromDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to 50, -1 returns all."
func (co *Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: errorString(httputil.ErrInvalidQueryString)})
		return
	}

	if filter.Kind != "" && !slices.Contains(ledger.Kinds, filter.Kind) {
		err := fmt.Errorf("%w: '%s'", ledger.ErrInvalidKind, filter.Kind)
		c.JSON(status(err), TransactionListResponse{Error: errorString(err)})
		return
	}

	var matching []Transaction
	co.read(func(s *ledger.Store) {
		var transactions []*ledger.Transaction
		switch {
		case filter.Account != "":
			transactions = s.AccountTransactions(filter.Account)
		case filter.Envelope != "":
			transactions = s.EnvelopeTransactions(filter.Envelope)
		default:
			transactions = s.Transactions()
		}

		for _, t := range transactions {
			if filter.matches(s, t) {
				matching = append(matching, newTransaction(c, t))
			}
		}
	})

	total := len(matching)
	start := min(int(filter.Offset), total)
	end := total
	if filter.Limit >= 0 {
		end = min(start+filter.Limit, total)
	}

	data := append(make([]Transaction, 0, end-start), matching[start:end]...)

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  filter.Limit,
			Total:  total,
		},
	})
}

// matches reports if t matches all filters that are not covered by the
// account and envelope specific views.
func (f TransactionQueryFilter) matches(s *ledger.Store, t *ledger.Transaction) bool {
	// Both account and envelope set: the account view was used, check the envelope
	if f.Account != "" && f.Envelope != "" && !referencesEnvelope(t, f.Envelope) {
		return false
	}

	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}

	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if f.Description != "" && !glob.Glob(f.Description, t.Description) {
		return false
	}

	if !f.FromDate.IsZero() && t.Date.Before(f.FromDate) {
		return false
	}

	// untilDate includes the whole day
	if !f.UntilDate.IsZero() && !t.Date.Before(f.UntilDate.Add(24*time.Hour)) {
		return false
	}

	return true
}

func referencesEnvelope(t *ledger.Transaction, name string) bool {
	switch t.Kind {
	case ledger.KindTransferEnvelope:
		return t.Account == name || t.Target == name
	case ledger.KindExpense, ledger.KindDistribution:
		return t.Target == name
	}
	return false
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func (co *Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	var data Transaction
	co.read(func(s *ledger.Store) {
		var t *ledger.Transaction
		t, err = s.Transaction(uri.ID.UUID)
		if err == nil {
			data = newTransaction(c, t)
		}
	})
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. The old effect on balances is reversed and the new one applied.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co *Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	body, err := httputil.ReadBody(c)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	var data Transaction
	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		t, err := s.Transaction(uri.ID.UUID)
		if err != nil {
			return err
		}

		// Fields missing in the body keep their current value
		editable := newTransaction(c, t).TransactionEditable
		if err := httputil.DecodeBody(body, &editable); err != nil {
			return err
		}

		t, err = s.EditTransaction(t.ID, editable.input())
		if err != nil {
			return err
		}

		data = newTransaction(c, t)
		return nil
	})
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and reverses its effect on balances
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func (co *Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		return s.DeleteTransaction(uri.ID.UUID)
	})
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
