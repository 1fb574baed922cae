package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
)

// reportingHandler handles HTTP requests related to accounting reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to accounting reports.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/ledger", h.getStatement)
		reports.GET("/cash-book", h.getCashBook)
		reports.GET("/daily-collection", h.getDailyCollection)
		reports.GET("/outstanding", h.getOutstanding)
	}
}

// getStatement godoc
// @Summary Generate a party ledger statement
// @Description Generates the ledger statement of a party for an inclusive date range. Omitted bounds leave that side of the range open.
// @Tags reports
// @Produce json
// @Param partyType query string true "Party type (CUSTOMER, LEDGER_ACCOUNT, EXECUTIVE)"
// @Param partyId query string true "Party ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party has no account"
// @Failure 500 {object} map[string]string "Failed to generate statement"
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportingHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var from, to *time.Time
	if params.StartDate != "" {
		parsed, err := dto.ParseReportDate(params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate format. Use YYYY-MM-DD"})
			return
		}
		from = &parsed
	}
	if params.EndDate != "" {
		parsed, err := dto.ParseReportDate(params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate format. Use YYYY-MM-DD"})
			return
		}
		to = &parsed
	}

	party := domain.PartyRef{Type: domain.PartyType(params.PartyType), ID: params.PartyID}

	logger = logger.With(slog.String("party_type", params.PartyType), slog.String("party_id", params.PartyID))
	logger.Info("Received request to generate statement")

	statement, err := h.reportingService.GetStatement(c.Request.Context(), party, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid statement request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Party account not found for statement")
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found for party"})
		} else {
			logger.Error("Failed to generate statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statement"})
		}
		return
	}

	logger.Info("Statement generated", slog.Int("entry_count", len(statement.Postings)))
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// getCashBook godoc
// @Summary Generate the cash book
// @Description Generates the day-grouped receipts and payments register over all cash and bank accounts for a date range
// @Tags reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashBookResponse
// @Failure 400 {object} map[string]string "Invalid input or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate cash book"
// @Security BearerAuth
// @Router /reports/cash-book [get]
func (h *reportingHandler) getCashBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := dto.ParseReportDate(params.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate format. Use YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseReportDate(params.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate format. Use YYYY-MM-DD"})
		return
	}

	cashBook, err := h.reportingService.GetCashBook(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate cash book", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash book"})
		}
		return
	}

	logger.Info("Cash book generated", slog.Int("day_count", len(cashBook.Days)))
	c.JSON(http.StatusOK, dto.ToCashBookResponse(cashBook))
}

// getDailyCollection godoc
// @Summary Generate the daily collection report
// @Description Lists all customer receipts taken on a single day with totals split by payment mode
// @Tags reports
// @Produce json
// @Param date query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyCollectionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/daily-collection [get]
func (h *reportingHandler) getDailyCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	date, err := dto.ParseReportDate(params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	collection, err := h.reportingService.GetDailyCollection(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to generate daily collection report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	logger.Info("Daily collection report generated", slog.Int("entry_count", len(collection.Entries)))
	c.JSON(http.StatusOK, dto.ToDailyCollectionResponse(collection))
}

// getOutstanding godoc
// @Summary Generate the outstanding dues report
// @Description Lists every customer carrying an unsettled account balance with the total amount receivable
// @Tags reports
// @Produce json
// @Success 200 {object} dto.OutstandingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *reportingHandler) getOutstanding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.GetOutstanding(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate outstanding report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	logger.Info("Outstanding report generated", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToOutstandingResponse(rows))
}
