package booking

import (
	"errors"
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

// GetAvailableTimes handles GET /api/v1/booking/times?type=tour&tour=Waterfall+Hike
func (c *Controller) GetAvailableTimes(ctx *gin.Context) {
	bookingType := BookingType(ctx.DefaultQuery("type", BookingTypeTour.String()))
	if !bookingType.IsValid() {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking type")
		return
	}

	tourName := ctx.Query("tour")
	times := c.service.AvailableTimes(bookingType, tourName)

	response.Success(ctx, http.StatusOK, "Available times retrieved successfully", AvailableTimesResponse{
		BookingType: bookingType,
		Tour:        tourName,
		Times:       times,
	})
}

// PostQuote handles POST /api/v1/booking/quote
func (c *Controller) PostQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote := c.service.Quote(ctx.Request.Context(), req)

	response.Success(ctx, http.StatusOK, "Quote computed successfully", quote)
}

// GetPrefill handles GET /api/v1/booking/prefill?tour=... or ?type=transfer&id=...
func (c *Controller) GetPrefill(ctx *gin.Context) {
	selection := c.service.Prefill(PrefillQuery{
		Type: ctx.Query("type"),
		ID:   ctx.Query("id"),
		Tour: ctx.Query("tour"),
	})

	response.Success(ctx, http.StatusOK, "Prefill computed successfully", selection)
}

// PostRequest handles POST /api/v1/booking/requests
func (c *Controller) PostRequest(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	pending, err := c.service.SubmitRequest(ctx.Request.Context(), &req)
	if err != nil {
		var validationErr *ValidationFailedError
		if errors.As(err, &validationErr) {
			response.ValidationFailed(ctx, validationErr.Fields)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to accept booking request")
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking request pending confirmation", pending)
}

// ConfirmRequest handles POST /api/v1/booking/requests/:id/confirm
func (c *Controller) ConfirmRequest(ctx *gin.Context) {
	confirmationID := ctx.Param("id")

	err := c.service.ConfirmRequest(ctx.Request.Context(), confirmationID)
	if err == nil {
		response.Success(ctx, http.StatusOK, "Booking request sent. We'll contact you within 12 hours.", nil)
		return
	}

	if errors.Is(err, ErrConfirmationNotFound) {
		response.Error(ctx, http.StatusNotFound, "Confirmation expired or not found. Please submit again.")
		return
	}

	if errors.Is(err, ErrRelaySendFailed) {
		// The pending request is retained; the client may retry with the
		// same confirmation id.
		response.Error(ctx, http.StatusBadGateway, "Submission error. Please try again.")
		return
	}

	response.Error(ctx, http.StatusInternalServerError, "Failed to confirm booking request")
}

// DiscardRequest handles DELETE /api/v1/booking/requests/:id
func (c *Controller) DiscardRequest(ctx *gin.Context) {
	confirmationID := ctx.Param("id")

	if err := c.service.DiscardRequest(ctx.Request.Context(), confirmationID); err != nil {
		if errors.Is(err, ErrConfirmationNotFound) {
			response.Error(ctx, http.StatusNotFound, "Confirmation expired or not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to discard booking request")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking request discarded", nil)
}
