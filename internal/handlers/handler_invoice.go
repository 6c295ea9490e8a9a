package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// invoiceHandler handles HTTP requests for the invoice lifecycle.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createDraft)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.DELETE("/:invoiceID", h.deleteDraft)
		invoices.POST("/:invoiceID/issue", h.issueInvoice)
		invoices.POST("/:invoiceID/void", h.voidInvoice)
		invoices.POST("/:invoiceID/return-to-draft", h.returnToDraft)
		invoices.POST("/:invoiceID/items", h.attachItems)
		invoices.POST("/:invoiceID/lines", h.addManualLine)
	}
	rg.DELETE("/invoice-lines/:lineID", h.detachLine)
}

func (h *invoiceHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateInvoiceRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateDraft(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDraftExists) {
			logger.Warn("Client already has a draft invoice", slog.String("client_id", createReq.ClientID))
			c.JSON(http.StatusConflict, gin.H{"error": "Client already has a draft invoice"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for draft invoice", slog.String("client_id", createReq.ClientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating draft invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create draft invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft invoice"})
		}
		return
	}

	logger.Info("Draft invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice from service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}

	logger.Debug("Invoice retrieved successfully", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var clientID *string
	if raw := c.Query("clientID"); raw != "" {
		clientID = &raw
	}

	var status *domain.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.InvoiceStatus(strings.ToUpper(raw))
		switch parsed {
		case domain.InvoiceDraft, domain.InvoiceIssued, domain.InvoicePaid, domain.InvoiceVoid:
			status = &parsed
		default:
			logger.Warn("Unknown invoice status filter", slog.String("status", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown invoice status"})
			return
		}
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), clientID, status, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	logger.Info("Invoices listed successfully", slog.Int("count", len(invoices)))
	c.JSON(http.StatusOK, gin.H{"invoices": dto.ToInvoiceResponses(invoices)})
}

func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	// The body is optional; its absence means allowEmpty=false.
	issueReq := dto.IssueInvoiceRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&issueReq); err != nil {
			logger.Error("Failed to bind JSON for IssueInvoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.invoiceService.Issue(c.Request.Context(), invoiceID, issueReq.AllowEmpty, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for issue", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrInvoiceNotDraft) {
			logger.Warn("Invoice is not a draft", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Only draft invoices can be issued"})
		} else if errors.Is(err, apperrors.ErrNoLinesAttached) {
			logger.Warn("Invoice has no lines attached", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice has no lines; set allowEmpty to issue anyway"})
		} else if errors.Is(err, apperrors.ErrAccountNotConfigured) {
			logger.Error("Posting accounts not configured", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ledger posting accounts are not configured"})
		} else {
			logger.Error("Failed to issue invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue invoice"})
		}
		return
	}

	logger.Info("Invoice issued successfully",
		slog.String("invoice_id", result.InvoiceID),
		slog.String("invoice_number", result.InvoiceNumber),
	)
	c.JSON(http.StatusOK, result)
}

func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.Void(c.Request.Context(), invoiceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for void", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrHasPayments) {
			logger.Warn("Invoice has payments applied", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice has payments applied; unallocate them first"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Invoice cannot be voided in its current status", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice cannot be voided in its current status"})
		} else {
			logger.Error("Failed to void invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void invoice"})
		}
		return
	}

	logger.Info("Invoice voided successfully", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

func (h *invoiceHandler) returnToDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.ReturnToDraft(c.Request.Context(), invoiceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for return to draft", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrInvoiceNotIssued) {
			logger.Warn("Invoice is not issued", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Only issued invoices can return to draft"})
		} else if errors.Is(err, apperrors.ErrHasPayments) {
			logger.Warn("Invoice has payments applied", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice has payments applied; unallocate them first"})
		} else {
			logger.Error("Failed to return invoice to draft in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return invoice to draft"})
		}
		return
	}

	logger.Info("Invoice returned to draft successfully", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

func (h *invoiceHandler) deleteDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteDraft(c.Request.Context(), invoiceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for delete", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrInvoiceNotDraft) {
			logger.Warn("Invoice is not a draft", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Only draft invoices can be deleted"})
		} else {
			logger.Error("Failed to delete draft invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft invoice"})
		}
		return
	}

	logger.Info("Draft invoice deleted successfully", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

func (h *invoiceHandler) attachItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	attachReq := dto.AttachItemsRequest{}
	if err := c.ShouldBindJSON(&attachReq); err != nil {
		logger.Error("Failed to bind JSON for AttachItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.AttachItems(c.Request.Context(), invoiceID, attachReq, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice or item not found for attach", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvoiceNotDraft) {
			logger.Warn("Invoice is not a draft", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Items can only be attached to draft invoices"})
		} else if errors.Is(err, apperrors.ErrClientMismatch) {
			logger.Warn("Item belongs to a different client", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrItemNotEligible) {
			logger.Warn("Item not eligible for invoicing", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error attaching items", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to attach items in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach items"})
		}
		return
	}

	logger.Info("Items attached successfully", slog.String("invoice_id", invoiceID), slog.Int("line_count", len(invoice.Lines)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) addManualLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	lineReq := dto.AddInvoiceLineRequest{}
	if err := c.ShouldBindJSON(&lineReq); err != nil {
		logger.Error("Failed to bind JSON for AddManualLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.AddManualLine(c.Request.Context(), invoiceID, lineReq, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for manual line", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrInvoiceNotDraft) {
			logger.Warn("Invoice is not a draft", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Lines can only be added to draft invoices"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding manual line", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add manual line in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add invoice line"})
		}
		return
	}

	logger.Info("Manual line added successfully", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) detachLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineID := c.Param("lineID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DetachLine(c.Request.Context(), lineID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice line not found for detach", slog.String("line_id", lineID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice line not found"})
		} else if errors.Is(err, apperrors.ErrInvoiceNotDraft) {
			logger.Warn("Invoice is not a draft", slog.String("line_id", lineID))
			c.JSON(http.StatusConflict, gin.H{"error": "Lines can only be detached from draft invoices"})
		} else {
			logger.Error("Failed to detach line in service", slog.String("error", err.Error()), slog.String("line_id", lineID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach invoice line"})
		}
		return
	}

	logger.Info("Invoice line detached successfully", slog.String("line_id", lineID))
	c.Status(http.StatusNoContent)
}
