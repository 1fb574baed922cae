package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
)

// bookingHandler handles HTTP requests related to bookings.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

func newBookingHandler(bs portssvc.BookingSvcFacade) *bookingHandler {
	return &bookingHandler{
		bookingService: bs,
	}
}

// RegisterBookingRoutes registers booking specific routes.
func RegisterBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := newBookingHandler(bookingService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/:bookingID", h.getBooking)
		bookings.POST("/:bookingID/cancel", h.cancelBooking)
		bookings.POST("/:bookingID/complete", h.completeBooking)
	}
}

// createBooking godoc
// @Summary Book a plot for a customer
// @Description Books an available plot, marks it BOOKED and posts the agreed amount as a receivable on the customer's account
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input, plot unavailable or party inactive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer, plot or executive not found"
// @Failure 409 {object} map[string]string "Plot was booked concurrently"
// @Failure 500 {object} map[string]string "Failed to create booking"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating booking", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Dependency not found creating booking", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Conflict creating booking", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create booking in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	logger.Info("Booking created", slog.String("booking_id", booking.BookingID), slog.String("plot_id", booking.PlotID))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// listBookings godoc
// @Summary List bookings
// @Description Retrieves a paginated list of bookings, newest first
// @Tags bookings
// @Produce  json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bookings"
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBookingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if params.CustomerID != nil && *params.CustomerID != "" {
		bookings, err := h.bookingService.ListBookingsByCustomer(c.Request.Context(), *params.CustomerID)
		if err != nil {
			logger.Error("Failed to list bookings by customer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
			return
		}
		c.JSON(http.StatusOK, dto.ToListBookingResponse(bookings))
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list bookings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookingResponse(bookings))
}

// getBooking godoc
// @Summary Get a booking by ID
// @Description Retrieves details for a specific booking
// @Tags bookings
// @Produce  json
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 500 {object} map[string]string "Failed to retrieve booking"
// @Security BearerAuth
// @Router /bookings/{bookingID} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		logger.Error("Failed to get booking from service", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels an active booking, removes its receivable posting and frees the plot. Bookings with receipts cannot be cancelled.
// @Tags bookings
// @Produce  json
// @Param bookingID path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 409 {object} map[string]string "Booking has receipts or is not active"
// @Failure 500 {object} map[string]string "Failed to cancel booking"
// @Security BearerAuth
// @Router /bookings/{bookingID}/cancel [post]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Booking cancel rejected", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel booking in service", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	logger.Info("Booking cancelled", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}

// completeBooking godoc
// @Summary Complete a booking
// @Description Marks a fully paid booking as completed and the plot as SOLD
// @Tags bookings
// @Produce  json
// @Param bookingID path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 409 {object} map[string]string "Booking is not fully paid or not active"
// @Failure 500 {object} map[string]string "Failed to complete booking"
// @Security BearerAuth
// @Router /bookings/{bookingID}/complete [post]
func (h *bookingHandler) completeBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bookingService.CompleteBooking(c.Request.Context(), bookingID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Booking completion rejected", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to complete booking in service", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete booking"})
		}
		return
	}

	logger.Info("Booking completed", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}
