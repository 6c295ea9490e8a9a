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

// bankAccountHandler handles HTTP requests for bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

// newBankAccountHandler creates a new bankAccountHandler.
func newBankAccountHandler(bankAccountService portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{
		bankAccountService: bankAccountService,
	}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:bankAccountID", h.getBankAccountBalance)
	}
}

func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateBankAccountRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bankAccount, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Bank account or ledger code already exists", slog.String("code", createReq.AccountCode))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		}
		return
	}

	logger.Info("Bank account created successfully", slog.String("bank_account_id", bankAccount.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(bankAccount, bankAccount.OpeningBalance))
}

func (h *bankAccountHandler) getBankAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	bankAccount, balance, err := h.bankAccountService.GetBalance(c.Request.Context(), bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
			return
		}
		logger.Error("Failed to get bank account balance from service", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank account"})
		return
	}

	logger.Debug("Bank account balance retrieved", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount, balance))
}

func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bankAccounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list bank accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	responses := make([]dto.BankAccountResponse, len(bankAccounts))
	for i := range bankAccounts {
		responses[i] = dto.ToBankAccountResponse(&bankAccounts[i], bankAccounts[i].OpeningBalance)
	}

	logger.Info("Bank accounts listed successfully", slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, gin.H{"bankAccounts": responses})
}
