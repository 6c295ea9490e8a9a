package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arduabooks/backend/internal/apperrors"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// billingItemHandler handles HTTP requests for billable time and expenses.
type billingItemHandler struct {
	billingItemService portssvc.BillingItemSvcFacade
}

// newBillingItemHandler creates a new billingItemHandler.
func newBillingItemHandler(billingItemService portssvc.BillingItemSvcFacade) *billingItemHandler {
	return &billingItemHandler{
		billingItemService: billingItemService,
	}
}

// registerBillingItemRoutes registers routes related to time entries and expenses.
func registerBillingItemRoutes(rg *gin.RouterGroup, billingItemService portssvc.BillingItemSvcFacade) {
	h := newBillingItemHandler(billingItemService)

	rg.POST("/time-entries", h.createTimeEntry)
	rg.POST("/expenses", h.createExpense)
}

func (h *billingItemHandler) createTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateTimeEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.billingItemService.CreateTimeEntry(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating time entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for time entry", slog.String("client_id", createReq.ClientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to create time entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time entry"})
		}
		return
	}

	logger.Info("Time entry created successfully", slog.String("time_entry_id", entry.TimeEntryID))
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

func (h *billingItemHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateExpenseRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.billingItemService.CreateExpense(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for expense", slog.String("client_id", createReq.ClientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to create expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}
