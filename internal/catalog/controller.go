package catalog

import (
	"net/http"

	"selvatours/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListTours handles GET /api/v1/catalog/tours
func (c *Controller) ListTours(ctx *gin.Context) {
	category := ctx.Query("category")

	tours, err := c.service.ListTours(category)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Tours retrieved successfully", gin.H{
		"tours": tours,
		"count": len(tours),
	})
}

// GetTour handles GET /api/v1/catalog/tours/:id
func (c *Controller) GetTour(ctx *gin.Context) {
	tour, err := c.service.GetTour(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Tour not found")
		return
	}

	response.Success(ctx, http.StatusOK, "Tour retrieved successfully", tour)
}

// ListTransfers handles GET /api/v1/catalog/transfers
func (c *Controller) ListTransfers(ctx *gin.Context) {
	groups := c.service.ListTransfers()

	response.Success(ctx, http.StatusOK, "Transfers retrieved successfully", groups)
}
