package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoriesResponse lists the accepted query values.
type CategoriesResponse struct {
	Categories []string `json:"categories" example:"network,auth,database,validation,rate_limit,server_error,not_implemented"`
	Tones      []string `json:"tones" example:"casual,professional,humorous"`
}

// Categories godoc
// @ID          listCategories
// @Summary     List categories and tones
// @Description Returns every valid category and tone, in declaration order.
// @Tags        Catalog
// @Produce     json
// @Success     200  {object}  handlers.CategoriesResponse
// @Router      /categories [get]
func (h *Handlers) Categories(c *gin.Context) {
	ok(c, http.StatusOK, CategoriesResponse{
		Categories: h.svc.Categories(),
		Tones:      h.svc.Tones(),
	})
}
