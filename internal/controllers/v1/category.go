package v1

import (
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/httputil"
	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/gin-gonic/gin"
)

type CategoryListResponse struct {
	Data  []string `json:"data" example:"Food,Home"`                           // All category labels
	Error *string  `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co *Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCategoryList)
	r.GET("", co.GetCategories)
	r.POST("", co.CreateCategories)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get categories
// @Description	Returns all category labels
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func (co *Controller) GetCategories(c *gin.Context) {
	data := make([]string, 0)
	co.read(func(s *ledger.Store) {
		data = append(data, s.Categories()...)
	})

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Create categories
// @Description	Adds category labels. Existing labels are ignored. Returns all labels.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryListResponse
// @Failure		400			{object}	CategoryListResponse
// @Failure		500			{object}	CategoryListResponse
// @Param			categories	body		[]string	true	"Category labels"
// @Router			/v1/categories [post]
func (co *Controller) CreateCategories(c *gin.Context) {
	var names []string
	if err := httputil.BindData(c, &names); err != nil {
		c.JSON(status(err), CategoryListResponse{Error: errorString(err)})
		return
	}

	data := make([]string, 0)
	err := co.mutate(c.Request.Context(), func(s *ledger.Store) error {
		for _, name := range names {
			if err := s.AddCategory(name); err != nil {
				return err
			}
		}

		data = append(data, s.Categories()...)
		return nil
	})
	if err != nil {
		c.JSON(status(err), CategoryListResponse{Error: errorString(err)})
		return
	}

	c.JSON(http.StatusCreated, CategoryListResponse{Data: data})
}
