package booking

import (
	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	bookingGroup := router.Group("/booking")
	{
		bookingGroup.GET("/times", controller.GetAvailableTimes)                 // GET /api/v1/booking/times?type=tour&tour=...
		bookingGroup.POST("/quote", controller.PostQuote)                        // POST /api/v1/booking/quote
		bookingGroup.GET("/prefill", controller.GetPrefill)                      // GET /api/v1/booking/prefill?tour=... | ?type=transfer&id=...
		bookingGroup.POST("/requests", controller.PostRequest)                   // POST /api/v1/booking/requests
		bookingGroup.POST("/requests/:id/confirm", controller.ConfirmRequest)    // POST /api/v1/booking/requests/:id/confirm
		bookingGroup.DELETE("/requests/:id", controller.DiscardRequest)          // DELETE /api/v1/booking/requests/:id
	}
}
