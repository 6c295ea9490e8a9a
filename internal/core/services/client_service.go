package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// clientService provides client operations for the billing workflow.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient creates a new client.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:        uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		BillingAddress:  req.BillingAddress,
		DefaultRate:     req.DefaultRate,
		PaymentTermsDay: req.PaymentTermsDay,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if client.PaymentTermsDay <= 0 {
		client.PaymentTermsDay = 30
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// GetClientByID retrieves a client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

// ListClients retrieves clients ordered by name.
func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return s.clientRepo.ListClients(ctx, limit, offset)
}
