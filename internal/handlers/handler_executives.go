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

// executiveHandler handles HTTP requests related to sales executives.
type executiveHandler struct {
	executiveService portssvc.ExecutiveSvcFacade
}

func newExecutiveHandler(es portssvc.ExecutiveSvcFacade) *executiveHandler {
	return &executiveHandler{
		executiveService: es,
	}
}

// RegisterExecutiveRoutes registers executive specific routes.
func RegisterExecutiveRoutes(rg *gin.RouterGroup, executiveService portssvc.ExecutiveSvcFacade) {
	h := newExecutiveHandler(executiveService)

	executives := rg.Group("/executives")
	{
		executives.POST("", h.createExecutive)
		executives.GET("", h.listExecutives)
		executives.GET("/:executiveID", h.getExecutive)
		executives.PUT("/:executiveID", h.updateExecutive)
		executives.DELETE("/:executiveID", h.deactivateExecutive)
	}
}

// createExecutive godoc
// @Summary Create a sales executive
// @Description Creates an executive with their commission rate and opens their commission account
// @Tags executives
// @Accept  json
// @Produce  json
// @Param   executive body dto.CreateExecutiveRequest true "Executive details"
// @Success 201 {object} dto.ExecutiveResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create executive"
// @Security BearerAuth
// @Router /executives [post]
func (h *executiveHandler) createExecutive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExecutiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createExecutive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	executive, err := h.executiveService.CreateExecutive(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating executive", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create executive in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create executive"})
		}
		return
	}

	logger.Info("Executive created", slog.String("executive_id", executive.ExecutiveID))
	c.JSON(http.StatusCreated, dto.ToExecutiveResponse(executive))
}

// listExecutives godoc
// @Summary List executives
// @Description Retrieves a paginated list of active executives
// @Tags executives
// @Produce  json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExecutivesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list executives"
// @Security BearerAuth
// @Router /executives [get]
func (h *executiveHandler) listExecutives(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListExecutivesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	executives, err := h.executiveService.ListExecutives(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list executives from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list executives"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExecutiveResponse(executives))
}

// getExecutive godoc
// @Summary Get an executive by ID
// @Description Retrieves details for a specific executive
// @Tags executives
// @Produce  json
// @Param executiveID path string true "Executive ID"
// @Success 200 {object} dto.ExecutiveResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Executive not found"
// @Failure 500 {object} map[string]string "Failed to retrieve executive"
// @Security BearerAuth
// @Router /executives/{executiveID} [get]
func (h *executiveHandler) getExecutive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	executiveID := c.Param("executiveID")

	executive, err := h.executiveService.GetExecutiveByID(c.Request.Context(), executiveID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Executive not found"})
			return
		}
		logger.Error("Failed to get executive from service", slog.String("error", err.Error()), slog.String("executive_id", executiveID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve executive"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExecutiveResponse(executive))
}

// updateExecutive godoc
// @Summary Update an executive
// @Description Updates an executive's details. A commission rate change applies to future accruals only.
// @Tags executives
// @Accept  json
// @Produce  json
// @Param executiveID path string true "Executive ID"
// @Param executive body dto.UpdateExecutiveRequest true "Fields to update"
// @Success 200 {object} dto.ExecutiveResponse
// @Failure 400 {object} map[string]string "Invalid request format or rate out of range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Executive not found"
// @Failure 500 {object} map[string]string "Failed to update executive"
// @Security BearerAuth
// @Router /executives/{executiveID} [put]
func (h *executiveHandler) updateExecutive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	executiveID := c.Param("executiveID")

	var req dto.UpdateExecutiveRequest
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

	executive, err := h.executiveService.UpdateExecutive(c.Request.Context(), executiveID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Executive not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update executive in service", slog.String("error", err.Error()), slog.String("executive_id", executiveID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update executive"})
		}
		return
	}

	logger.Info("Executive updated", slog.String("executive_id", executiveID))
	c.JSON(http.StatusOK, dto.ToExecutiveResponse(executive))
}

// deactivateExecutive godoc
// @Summary Deactivate an executive
// @Description Marks an executive inactive. No further commission accrues for their bookings.
// @Tags executives
// @Produce  json
// @Param executiveID path string true "Executive ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Executive not found"
// @Failure 500 {object} map[string]string "Failed to deactivate executive"
// @Security BearerAuth
// @Router /executives/{executiveID} [delete]
func (h *executiveHandler) deactivateExecutive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	executiveID := c.Param("executiveID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.executiveService.DeactivateExecutive(c.Request.Context(), executiveID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Executive not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate executive in service", slog.String("error", err.Error()), slog.String("executive_id", executiveID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate executive"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
