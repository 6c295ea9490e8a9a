package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/core/services"
	"github.com/arduabooks/backend/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockClientRepo  *MockClientRepository
	mockPostingSvc  *MockPostingService
	service         portssvc.PaymentSvcFacade
	client          domain.Client
	userID          string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockPostingSvc = new(MockPostingService)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockInvoiceRepo,
		suite.mockClientRepo,
		suite.mockPostingSvc,
	)

	suite.userID = uuid.NewString()
	suite.client = domain.Client{ClientID: uuid.NewString(), Name: "Acme Consulting", IsActive: true}
}

func (suite *PaymentServiceTestSuite) expectTx() {
	suite.mockPaymentRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("Rollback", mock.Anything, nil).Return(nil).Maybe()
}

func (suite *PaymentServiceTestSuite) issuedInvoice(total int64) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		ClientID:      suite.client.ClientID,
		InvoiceNumber: "2026-001",
		Status:        domain.InvoiceIssued,
		Total:         decimal.NewFromInt(total),
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialAllocation() {
	ctx := context.Background()
	invoice := suite.issuedInvoice(1000)
	req := dto.RecordPaymentRequest{
		ClientID: suite.client.ClientID,
		Amount:   decimal.NewFromInt(750),
		Method:   string(domain.MethodCheck),
		Memo:     "check #1042",
		Allocations: []dto.AllocationTarget{
			{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(600)},
		},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.expectTx()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Amount.Equal(decimal.NewFromInt(750)) && p.UnappliedAmount.Equal(decimal.NewFromInt(750))
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockPaymentRepo.On("SumApplicationsForInvoiceInTx", ctx, nil, invoice.InvoiceID).Return(decimal.Zero, nil).Once()
	suite.mockPaymentRepo.On("SaveApplicationInTx", ctx, nil, mock.MatchedBy(func(app domain.PaymentApplication) bool {
		return app.InvoiceID == invoice.InvoiceID && app.Amount.Equal(decimal.NewFromInt(600))
	})).Return(nil).Once()
	suite.mockPostingSvc.On("PostPaymentReceived", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UnappliedAmount.Equal(decimal.NewFromInt(150))
	}), decimal.NewFromInt(600), suite.userID).Return(uuid.NewString(), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.PostingStatus == domain.Posted && p.UnappliedAmount.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()
	suite.mockPaymentRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.UnappliedAmount.Equal(decimal.NewFromInt(150)))
	suite.Equal(domain.Posted, payment.PostingStatus)
	// Partial application leaves the invoice ISSUED.
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ExactOutstanding_MarksInvoicePaid() {
	ctx := context.Background()
	invoice := suite.issuedInvoice(500)
	req := dto.RecordPaymentRequest{
		ClientID: suite.client.ClientID,
		Amount:   decimal.NewFromInt(500),
		Method:   string(domain.MethodACH),
		Allocations: []dto.AllocationTarget{
			{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(500)},
		},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.expectTx()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockPaymentRepo.On("SumApplicationsForInvoiceInTx", ctx, nil, invoice.InvoiceID).Return(decimal.Zero, nil).Once()
	suite.mockPaymentRepo.On("SaveApplicationInTx", ctx, nil, mock.AnythingOfType("domain.PaymentApplication")).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == invoice.InvoiceID && inv.Status == domain.InvoicePaid
	})).Return(nil).Once()
	suite.mockPostingSvc.On("PostPaymentReceived", ctx, nil, mock.AnythingOfType("domain.Payment"), decimal.NewFromInt(500), suite.userID).
		Return(uuid.NewString(), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UnappliedAmount.IsZero()
	})).Return(nil).Once()
	suite.mockPaymentRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.UnappliedAmount.IsZero())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverAllocation_WritesNoApplications() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.RecordPaymentRequest{
		ClientID: suite.client.ClientID,
		Amount:   decimal.NewFromInt(100),
		Method:   string(domain.MethodCash),
		Allocations: []dto.AllocationTarget{
			{InvoiceID: invoiceID, Amount: decimal.NewFromInt(150)},
		},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.expectTx()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.AnythingOfType("domain.Payment")).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverAllocation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveApplicationInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		ClientID: suite.client.ClientID,
		Amount:   decimal.Zero,
		Method:   string(domain.MethodCheck),
	}

	_, err := suite.service.RecordPayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAllocate_PostedPayment_ReversesBeforeReposting() {
	ctx := context.Background()
	invoice := suite.issuedInvoice(1000)
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		ClientID:        suite.client.ClientID,
		Amount:          decimal.NewFromInt(750),
		UnappliedAmount: decimal.NewFromInt(150),
		PostingStatus:   domain.Posted,
	}
	targets := []dto.AllocationTarget{{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(150)}}

	suite.expectTx()
	suite.mockPaymentRepo.On("FindPaymentByIDForUpdate", ctx, nil, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockPaymentRepo.On("SumApplicationsForInvoiceInTx", ctx, nil, invoice.InvoiceID).
		Return(decimal.NewFromInt(600), nil).Once()
	suite.mockPaymentRepo.On("SaveApplicationInTx", ctx, nil, mock.AnythingOfType("domain.PaymentApplication")).Return(nil).Once()
	suite.mockPostingSvc.On("Reverse", ctx, nil, payment.Ref(),
		fmt.Sprintf("Payment %s reallocated", payment.PaymentID), suite.userID).Return(uuid.NewString(), nil).Once()
	suite.mockPostingSvc.On("PostPaymentReceived", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UnappliedAmount.IsZero()
	}), decimal.NewFromInt(750), suite.userID).Return(uuid.NewString(), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentInTx", ctx, nil, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockPaymentRepo.On("Commit", ctx, nil).Return(nil).Once()

	result, err := suite.service.Allocate(ctx, payment.PaymentID, targets, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.UnappliedAmount.IsZero())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAllocate_InvoiceNotIssued() {
	ctx := context.Background()
	draft := suite.issuedInvoice(500)
	draft.Status = domain.InvoiceDraft
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		ClientID:        suite.client.ClientID,
		Amount:          decimal.NewFromInt(500),
		UnappliedAmount: decimal.NewFromInt(500),
	}

	suite.expectTx()
	suite.mockPaymentRepo.On("FindPaymentByIDForUpdate", ctx, nil, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, draft.InvoiceID).Return(&draft, nil).Once()

	_, err := suite.service.Allocate(ctx, payment.PaymentID,
		[]dto.AllocationTarget{{InvoiceID: draft.InvoiceID, Amount: decimal.NewFromInt(100)}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotIssued)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveApplicationInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAllocate_ClientMismatch() {
	ctx := context.Background()
	invoice := suite.issuedInvoice(500)
	invoice.ClientID = uuid.NewString() // different client
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		ClientID:        suite.client.ClientID,
		Amount:          decimal.NewFromInt(500),
		UnappliedAmount: decimal.NewFromInt(500),
	}

	suite.expectTx()
	suite.mockPaymentRepo.On("FindPaymentByIDForUpdate", ctx, nil, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.Allocate(ctx, payment.PaymentID,
		[]dto.AllocationTarget{{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(100)}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClientMismatch)
}

func (suite *PaymentServiceTestSuite) TestAllocate_ExceedsOutstanding() {
	ctx := context.Background()
	invoice := suite.issuedInvoice(1000)
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		ClientID:        suite.client.ClientID,
		Amount:          decimal.NewFromInt(900),
		UnappliedAmount: decimal.NewFromInt(900),
	}

	suite.expectTx()
	suite.mockPaymentRepo.On("FindPaymentByIDForUpdate", ctx, nil, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	// 800 already applied leaves only 200 outstanding.
	suite.mockPaymentRepo.On("SumApplicationsForInvoiceInTx", ctx, nil, invoice.InvoiceID).
		Return(decimal.NewFromInt(800), nil).Once()

	_, err := suite.service.Allocate(ctx, payment.PaymentID,
		[]dto.AllocationTarget{{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(300)}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverAllocation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveApplicationInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAllocate_NoTargets() {
	ctx := context.Background()

	_, err := suite.service.Allocate(ctx, uuid.NewString(), nil, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
