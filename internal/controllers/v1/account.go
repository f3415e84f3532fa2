package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co *Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccounts)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", co.OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)

		r.OPTIONS("/:id/close", co.OptionsAccountAction)
		r.POST("/:id/close", co.CloseAccount)
		r.OPTIONS("/:id/reopen", co.OptionsAccountAction)
		r.POST("/:id/reopen", co.ReopenAccount)
	}
}

// account returns the account with the ID. A missing account is a not found error.
func account(s *ledger.Store, id uuid.UUID) (*ledger.Account, error) {
	a, err := s.Account(id)
	if errors.Is(err, ledger.ErrInvalidReference) {
		return nil, fmt.Errorf("%w account with ID %s", models.ErrResourceNotFound, id)
	}
	return a, err
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [options]
func (co *Controller) OptionsAccountDetail(c *gin.Context) {
	if co.existingAccount(c) {
		httputil.OptionsGetPatchDelete(c)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/close [options]
// @Router			/v1/accounts/{id}/reopen [options]
func (co *Controller) OptionsAccountAction(c *gin.Context) {
	if co.existingAccount(c) {
		httputil.OptionsPost(c)
	}
}

// existingAccount verifies that the account from the URI exists. If it
// does not, the error response is written and false is returned.
func (co *Controller) existingAccount(c *gin.Context) bool {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err == nil {
		co.read(func(s *ledger.Store) {
			_, err = account(s, uri.ID.UUID)
		})
	}

	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return false
	}

	return true
}

// @Summary		Create accounts
// @Description	Creates accounts from the list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		201			{object}	AccountCreateResponse
// @Failure		400			{object}	AccountCreateResponse
// @Failure		500			{object}	AccountCreateResponse
// @Param			accounts	body		[]AccountCreate	true	"Accounts"
// @Router			/v1/accounts [post]
func (co *Controller) CreateAccounts(c *gin.Context) {
	var editables []AccountCreate

	err := httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), AccountCreateResponse{Error: errorString(err)})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AccountCreateResponse{}

	for _, editable := range editables {
		var data Account
		err := co.mutate(c.Request.Context(), func(s *ledger.Store) error {
			a, err := s.CreateAccount(editable.Name, editable.OpeningBalance)
			if err != nil {
				return err
			}

			data = newAccount(c, a)
			return nil
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, AccountResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get accounts
// @Description	Returns all accounts in the order they were created
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	AccountListResponse
// @Param			closed	query		bool	false	"Filter by closed state"
// @Router			/v1/accounts [get]
func (co *Controller) GetAccounts(c *gin.Context) {
	var filter struct {
		Closed *bool `form:"closed"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, AccountListResponse{Error: errorString(httputil.ErrInvalidQueryString)})
		return
	}

	data := make([]Account, 0)
	co.read(func(s *ledger.Store) {
		for _, a := range s.Accounts() {
			if filter.Closed != nil && a.Closed != *filter.Closed {
				continue
			}
			data = append(data, newAccount(c, a))
		}
	})

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [get]
func (co *Controller) GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	var data Account
	co.read(func(s *ledger.Store) {
		var a *ledger.Account
		a, err = account(s, uri.ID.UUID)
		if err == nil {
			data = newAccount(c, a)
		}
	})
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Rename account
// @Description	Renames an account. All transactions referencing the account are updated.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func (co *Controller) UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	var editable AccountEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	var data Account
	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		a, err := account(s, uri.ID.UUID)
		if err != nil {
			return err
		}

		a, err = s.RenameAccount(a.ID, a.Name, editable.Name)
		if err != nil {
			return err
		}

		data = newAccount(c, a)
		return nil
	})
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Delete account
// @Description	Deletes an account. Its transactions are kept without a reference to it.
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [delete]
func (co *Controller) DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		if _, err := account(s, uri.ID.UUID); err != nil {
			return err
		}

		return s.DeleteAccount(uri.ID.UUID)
	})
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Close account
// @Description	Closes an account. A remaining balance is transferred to the account named in transferTo.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			close	body		AccountClose	false	"Destination for the remaining balance"
// @Router			/v1/accounts/{id}/close [post]
func (co *Controller) CloseAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	// The body is optional for accounts without balance
	var data AccountClose
	err = httputil.BindData(c, &data)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	var response Account
	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		if _, err := account(s, uri.ID.UUID); err != nil {
			return err
		}

		a, err := s.CloseAccount(uri.ID.UUID, data.TransferTo)
		if err != nil {
			return err
		}

		response = newAccount(c, a)
		return nil
	})
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &response})
}

// @Summary		Reopen account
// @Description	Reopens a closed account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/reopen [post]
func (co *Controller) ReopenAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	var data Account
	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		a, err := account(s, uri.ID.UUID)
		if err != nil {
			return err
		}

		a, err = s.ReopenAccount(a.ID)
		if err != nil {
			return err
		}

		data = newAccount(c, a)
		return nil
	})
	if err != nil {
		c.JSON(status(err), AccountResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}
