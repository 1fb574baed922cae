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

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	bookingService  portssvc.BookingSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade, bs portssvc.BookingSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
		bookingService:  bs,
	}
}

// RegisterCustomerRoutes registers customer specific routes.
func RegisterCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, bookingService portssvc.BookingSvcFacade) {
	h := newCustomerHandler(customerService, bookingService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.GET("/:customerID/bookings", h.listCustomerBookings)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deactivateCustomer)
	}
}

// createCustomer godoc
// @Summary Create a new customer
// @Description Creates a customer and opens their ledger account, seeded with the opening balance when given
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating customer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		}
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves a paginated list of active customers
// @Tags customers
// @Produce  json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list customers"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list customers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Description Retrieves details for a specific customer
// @Tags customers
// @Produce  json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve customer"
// @Security BearerAuth
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to get customer from service", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomerBookings godoc
// @Summary List a customer's bookings
// @Description Retrieves all bookings made by a customer, newest first
// @Tags customers
// @Produce  json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list bookings"
// @Security BearerAuth
// @Router /customers/{customerID}/bookings [get]
func (h *customerHandler) listCustomerBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	bookings, err := h.bookingService.ListBookingsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to list customer bookings from service", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookingResponse(bookings))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates details of an existing customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param customerID path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to update customer"
// @Security BearerAuth
// @Router /customers/{customerID} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update customer in service", slog.String("error", err.Error()), slog.String("customer_id", customerID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Marks a customer inactive. Customers with active bookings or a non-zero balance cannot be deactivated.
// @Tags customers
// @Produce  json
// @Param customerID path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Customer has active bookings or an unsettled balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to deactivate customer"
// @Security BearerAuth
// @Router /customers/{customerID} [delete]
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), customerID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate customer in service", slog.String("error", err.Error()), slog.String("customer_id", customerID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate customer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
