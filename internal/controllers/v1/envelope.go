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

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co *Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopeList)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelopes)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", co.OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PATCH("/:id", co.UpdateEnvelope)
		r.DELETE("/:id", co.DeleteEnvelope)
	}
}

// envelope returns the envelope with the ID. A missing envelope is a not found error.
func envelope(s *ledger.Store, id uuid.UUID) (*ledger.Envelope, error) {
	e, err := s.Envelope(id)
	if errors.Is(err, ledger.ErrInvalidReference) {
		return nil, fmt.Errorf("%w envelope with ID %s", models.ErrResourceNotFound, id)
	}
	return e, err
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [options]
func (co *Controller) OptionsEnvelopeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err == nil {
		co.read(func(s *ledger.Store) {
			_, err = envelope(s, uri.ID.UUID)
		})
	}

	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create envelopes
// @Description	Creates envelopes from the list of envelopes
// @Tags			Envelopes
// @Produce		json
// @Success		201			{object}	EnvelopeCreateResponse
// @Failure		400			{object}	EnvelopeCreateResponse
// @Failure		500			{object}	EnvelopeCreateResponse
// @Param			envelopes	body		[]EnvelopeCreate	true	"Envelopes"
// @Router			/v1/envelopes [post]
func (co *Controller) CreateEnvelopes(c *gin.Context) {
	var editables []EnvelopeCreate

	err := httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(status(err), EnvelopeCreateResponse{Error: errorString(err)})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EnvelopeCreateResponse{}

	for _, editable := range editables {
		in, err := editable.input()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		in.InitialAmount = editable.InitialAmount
		in.SourceAccount = editable.SourceAccount

		var data Envelope
		err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
			e, err := s.CreateEnvelope(in)
			if err != nil {
				return err
			}

			data = newEnvelope(c, e)
			return nil
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, EnvelopeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get envelopes
// @Description	Returns all envelopes in the order they were created
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeListResponse
// @Param			category	query		string	false	"Filter by category"
// @Param			overdrawn	query		bool	false	"Filter by overdrawn state"
// @Router			/v1/envelopes [get]
func (co *Controller) GetEnvelopes(c *gin.Context) {
	var filter struct {
		Category  *string `form:"category"`
		Overdrawn *bool   `form:"overdrawn"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, EnvelopeListResponse{Error: errorString(httputil.ErrInvalidQueryString)})
		return
	}

	data := make([]Envelope, 0)
	co.read(func(s *ledger.Store) {
		for _, e := range s.Envelopes() {
			if filter.Category != nil && e.Category != *filter.Category {
				continue
			}

			if filter.Overdrawn != nil && e.Overdrawn() != *filter.Overdrawn {
				continue
			}

			data = append(data, newEnvelope(c, e))
		}
	})

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: data})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		400	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [get]
func (co *Controller) GetEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	var data Envelope
	co.read(func(s *ledger.Store) {
		var e *ledger.Envelope
		e, err = envelope(s, uri.ID.UUID)
		if err == nil {
			data = newEnvelope(c, e)
		}
	})
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &data})
}

// @Summary		Update envelope
// @Description	Updates an envelope. Only values to be updated need to be specified. The current amount cannot be changed, use transactions for that.
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		404			{object}	EnvelopeResponse
// @Failure		500			{object}	EnvelopeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelope	body		EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes/{id} [patch]
func (co *Controller) UpdateEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	body, err := httputil.ReadBody(c)
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	var data Envelope
	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		e, err := envelope(s, uri.ID.UUID)
		if err != nil {
			return err
		}

		// Fields missing in the body keep their current value
		editable := newEnvelopeEditable(e)
		if err := httputil.DecodeBody(body, &editable); err != nil {
			return err
		}

		in, err := editable.input()
		if err != nil {
			return err
		}

		e, err = s.UpdateEnvelope(e.ID, in)
		if err != nil {
			return err
		}

		data = newEnvelope(c, e)
		return nil
	})
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &data})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope. Transactions keep their reference to it.
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Failure		500	{object}	EnvelopeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [delete]
func (co *Controller) DeleteEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	err = co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		if _, err := envelope(s, uri.ID.UUID); err != nil {
			return err
		}

		return s.DeleteEnvelope(uri.ID.UUID)
	})
	if err != nil {
		c.JSON(status(err), EnvelopeResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
