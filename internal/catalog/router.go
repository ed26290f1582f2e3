package catalog

import (
	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller *Controller) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("/tours", controller.ListTours)        // GET /api/v1/catalog/tours?category=aquatic
		catalog.GET("/tours/:id", controller.GetTour)      // GET /api/v1/catalog/tours/:id
		catalog.GET("/transfers", controller.ListTransfers) // GET /api/v1/catalog/transfers
	}
}
