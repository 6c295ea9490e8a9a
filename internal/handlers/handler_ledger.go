package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for the journal ledger. The ledger is
// read-only over HTTP; entries are only ever written by the posting engine as
// part of an invoice or payment transition.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// registerLedgerRoutes registers routes related to the journal ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.GET("/documents/:kind/:documentID/entries", h.listEntriesForDocument)
	}
	rg.GET("/accounts/:accountID/lines", h.listLinesForAccount)
}

func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, lines, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	logger.Debug("Journal entry retrieved successfully", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, lines))
}

func (h *ledgerHandler) listEntriesForDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind := domain.DocumentKind(strings.ToUpper(c.Param("kind")))
	switch kind {
	case domain.KindInvoice, domain.KindPayment, domain.KindBankAccount:
	default:
		logger.Warn("Unknown document kind", slog.String("kind", string(kind)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document kind"})
		return
	}
	ref := domain.DocumentRef{Kind: kind, ID: c.Param("documentID")}

	entries, err := h.ledgerService.EntriesForDocument(c.Request.Context(), ref)
	if err != nil {
		logger.Error("Failed to list entries for document", slog.String("error", err.Error()), slog.String("document", ref.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i], nil)
	}

	logger.Info("Entries listed for document", slog.String("document", ref.String()), slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, gin.H{"entries": responses})
}

func (h *ledgerHandler) listLinesForAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	from, err := parseDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}

	lines, err := h.ledgerService.LinesForAccount(c.Request.Context(), accountID, from, to)
	if err != nil {
		logger.Error("Failed to list lines for account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger lines"})
		return
	}

	logger.Info("Ledger lines listed for account", slog.String("account_id", accountID), slog.Int("count", len(lines)))
	c.JSON(http.StatusOK, gin.H{"lines": dto.ToJournalLineResponses(lines)})
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
