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

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService      portssvc.ClientSvcFacade
	billingItemService portssvc.BillingItemSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(clientService portssvc.ClientSvcFacade, billingItemService portssvc.BillingItemSvcFacade) *clientHandler {
	return &clientHandler{
		clientService:      clientService,
		billingItemService: billingItemService,
	}
}

// registerClientRoutes registers routes related to clients, including the
// unbilled item listing the invoice attach picker uses.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, billingItemService portssvc.BillingItemSvcFacade) {
	h := newClientHandler(clientService, billingItemService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:clientID", h.getClientByID)
		clients.GET("/:clientID/unbilled-items", h.listUnbilledItems)
	}
}

func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateClientRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		}
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *clientHandler) getClientByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to get client from service", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}

	logger.Debug("Client retrieved successfully", slog.String("client_id", clientID))
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}

	logger.Info("Clients listed successfully", slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, gin.H{"clients": responses})
}

func (h *clientHandler) listUnbilledItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	entries, expenses, err := h.billingItemService.ListUnbilledForClient(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for unbilled items", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to list unbilled items from service", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unbilled items"})
		return
	}

	logger.Info("Unbilled items listed successfully",
		slog.String("client_id", clientID),
		slog.Int("time_entries", len(entries)),
		slog.Int("expenses", len(expenses)),
	)
	c.JSON(http.StatusOK, dto.ToUnbilledItemsResponse(entries, expenses))
}
