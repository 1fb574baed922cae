package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
)

// transactionHandler handles HTTP requests related to receipts and payments.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// RegisterTransactionRoutes registers routes related to transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactionsByParty)
		transactions.GET("/:postingID", h.getTransaction)
		transactions.PUT("/:postingID", h.updateTransaction)
		transactions.DELETE("/:postingID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a receipt or payment
// @Description Records a receipt or payment against a party and updates the account's running balances. A receipt linked to a booking also accrues the executive's commission.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party or booking not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
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

	posting, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Dependency not found creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Conflict creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "The account was modified concurrently, please retry"})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	logger.Info("Transaction recorded", slog.String("posting_id", posting.PostingID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(posting))
}

// listTransactionsByParty godoc
// @Summary List a party's transactions
// @Description Retrieves a page of postings for a party in date order with running balances
// @Tags transactions
// @Produce  json
// @Param partyType query string true "Party type (CUSTOMER, LEDGER_ACCOUNT, EXECUTIVE)"
// @Param partyId query string true "Party ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party has no account"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactionsByParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsByPartyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	party := domain.PartyRef{Type: domain.PartyType(params.PartyType), ID: params.PartyID}
	listParams := dto.ListTransactionsParams{Limit: params.Limit, NextToken: params.NextToken}

	resp, err := h.transactionService.ListTransactionsByParty(c.Request.Context(), party, listParams)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found for party"})
		} else {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
				c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
				return
			}
			logger.Error("Failed to list transactions from service", slog.String("error", err.Error()), slog.String("party_id", params.PartyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a specific posting by its ID
// @Tags transactions
// @Produce  json
// @Param postingID path string true "Posting ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{postingID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	posting, err := h.transactionService.GetTransactionByID(c.Request.Context(), postingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction from service", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(posting))
}

// updateTransaction godoc
// @Summary Edit a transaction's metadata
// @Description Edits a posting's date, description, payment mode, bank or receipt number. The amount and entry type are immutable; a date change recomputes downstream running balances.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param postingID path string true "Posting ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error or attempt to change the amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{postingID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	var req dto.UpdateTransactionRequest
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

	posting, err := h.transactionService.UpdateTransaction(c.Request.Context(), postingID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrImmutableField) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected transaction update", slog.String("error", err.Error()), slog.String("posting_id", postingID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "The account was modified concurrently, please retry"})
		} else {
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()), slog.String("posting_id", postingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		}
		return
	}

	logger.Info("Transaction updated", slog.String("posting_id", postingID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(posting))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a posting and recomputes downstream running balances. Commission postings accrued against it are removed in the same operation.
// @Tags transactions
// @Produce  json
// @Param postingID path string true "Posting ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "System generated postings cannot be deleted directly"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{postingID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), postingID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "The account was modified concurrently, please retry"})
		} else {
			logger.Error("Failed to delete transaction in service", slog.String("error", err.Error()), slog.String("posting_id", postingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		}
		return
	}

	logger.Info("Transaction deleted", slog.String("posting_id", postingID))
	c.Status(http.StatusNoContent)
}
