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

// projectHandler handles HTTP requests related to projects and their plots.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{
		projectService: ps,
	}
}

// RegisterProjectRoutes registers project and plot specific routes.
func RegisterProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProject)
		projects.POST("/:projectID/plots", h.createPlot)
		projects.GET("/:projectID/plots", h.listPlots)
	}

	plots := rg.Group("/plots")
	{
		plots.GET("/:plotID", h.getPlot)
	}
}

// createProject godoc
// @Summary Create a new project
// @Description Creates a real estate project under which plots are registered
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create project"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create project in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		}
		return
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Retrieves a paginated list of projects
// @Tags projects
// @Produce  json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list projects from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// getProject godoc
// @Summary Get a project by ID
// @Description Retrieves details for a specific project
// @Tags projects
// @Produce  json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to retrieve project"
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logger.Error("Failed to get project from service", slog.String("error", err.Error()), slog.String("project_id", projectID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// createPlot godoc
// @Summary Register a plot under a project
// @Description Creates a plot with its area and rate. The plot number must be unique within the project.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param projectID path string true "Project ID"
// @Param plot body dto.CreatePlotRequest true "Plot details"
// @Success 201 {object} dto.PlotResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Plot number already exists in the project"
// @Failure 500 {object} map[string]string "Failed to create plot"
// @Security BearerAuth
// @Router /projects/{projectID}/plots [post]
func (h *projectHandler) createPlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.CreatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plot, err := h.projectService.CreatePlot(c.Request.Context(), projectID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create plot in service", slog.String("error", err.Error()), slog.String("project_id", projectID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plot"})
		}
		return
	}

	logger.Info("Plot created", slog.String("plot_id", plot.PlotID), slog.String("project_id", projectID))
	c.JSON(http.StatusCreated, dto.ToPlotResponse(plot))
}

// listPlots godoc
// @Summary List plots in a project
// @Description Retrieves all plots registered under a project with their availability status
// @Tags projects
// @Produce  json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ListPlotsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to list plots"
// @Security BearerAuth
// @Router /projects/{projectID}/plots [get]
func (h *projectHandler) listPlots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	plots, err := h.projectService.ListPlotsByProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logger.Error("Failed to list plots from service", slog.String("error", err.Error()), slog.String("project_id", projectID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPlotResponse(plots))
}

// getPlot godoc
// @Summary Get a plot by ID
// @Description Retrieves details for a specific plot
// @Tags projects
// @Produce  json
// @Param plotID path string true "Plot ID"
// @Success 200 {object} dto.PlotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Plot not found"
// @Failure 500 {object} map[string]string "Failed to retrieve plot"
// @Security BearerAuth
// @Router /plots/{plotID} [get]
func (h *projectHandler) getPlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plotID := c.Param("plotID")

	plot, err := h.projectService.GetPlotByID(c.Request.Context(), plotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
			return
		}
		logger.Error("Failed to get plot from service", slog.String("error", err.Error()), slog.String("plot_id", plotID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlotResponse(plot))
}
