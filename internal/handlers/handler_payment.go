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

// paymentHandler handles HTTP requests for payments and allocations.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
	}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/allocations", h.allocatePayment)
	}
}

// allocationError maps the allocation failure modes shared by recording and
// re-allocating. Returns false when the error is not an allocation error.
func allocationError(c *gin.Context, logger *slog.Logger, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrOverAllocation):
		logger.Warn("Allocation exceeds available balance", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrClientMismatch):
		logger.Warn("Invoice belongs to a different client", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvoiceNotIssued):
		logger.Warn("Target invoice is not issued", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recordReq := dto.RecordPaymentRequest{}
	if err := c.ShouldBindJSON(&recordReq); err != nil {
		logger.Error("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), recordReq, creatorUserID)
	if err != nil {
		if allocationError(c, logger, err) {
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client or invoice not found for payment", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrAccountNotConfigured) {
			logger.Error("Posting accounts not configured", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ledger posting accounts are not configured"})
		} else {
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, nil))
}

func (h *paymentHandler) allocatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	allocateReq := dto.AllocatePaymentRequest{}
	if err := c.ShouldBindJSON(&allocateReq); err != nil {
		logger.Error("Failed to bind JSON for AllocatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.Allocate(c.Request.Context(), paymentID, allocateReq.Targets, userID)
	if err != nil {
		if allocationError(c, logger, err) {
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment or invoice not found for allocation", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error allocating payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to allocate payment in service", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate payment"})
		}
		return
	}

	logger.Info("Payment allocated successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("unapplied_amount", payment.UnappliedAmount.String()),
	)
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, nil))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, applications, err := h.paymentService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment not found", slog.String("payment_id", paymentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to get payment from service", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		return
	}

	logger.Debug("Payment retrieved successfully", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, applications))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var clientID *string
	if raw := c.Query("clientID"); raw != "" {
		clientID = &raw
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), clientID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list payments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPaymentResponse(&payments[i], nil)
	}

	logger.Info("Payments listed successfully", slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, gin.H{"payments": responses})
}
