package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockBillingRepo *MockBillingItemRepository
	mockPaymentRepo *MockPaymentRepository
	mockClientRepo  *MockClientRepository
	mockPostingSvc  *MockPostingService
	service         portssvc.InvoiceSvcFacade
	client          domain.Client
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBillingRepo = new(MockBillingItemRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockPostingSvc = new(MockPostingService)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockBillingRepo,
		suite.mockPaymentRepo,
		suite.mockClientRepo,
		suite.mockPostingSvc,
	)

	suite.userID = uuid.NewString()
	suite.client = domain.Client{
		ClientID:        uuid.NewString(),
		Name:            "Acme Consulting",
		PaymentTermsDay: 30,
		IsActive:        true,
	}
}

// expectTx wires Begin/Rollback on the invoice repository for one transactional call.
func (suite *InvoiceServiceTestSuite) expectTx() {
	suite.mockInvoiceRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockInvoiceRepo.On("Rollback", mock.Anything, nil).Return(nil).Maybe()
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{ClientID: suite.client.ClientID, Notes: "March work"}

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.ClientID == suite.client.ClientID &&
			inv.Status == domain.InvoiceDraft &&
			inv.PostingStatus == domain.Unposted &&
			inv.InvoiceNumber == "" &&
			inv.Total.IsZero()
	})).Return(nil).Once()

	invoice, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.Equal("March work", invoice.Notes)
	// Due date defaults to issue date plus the client's payment terms.
	suite.Equal(invoice.IssueDate.AddDate(0, 0, 30), invoice.DueDate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_DraftExists() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{ClientID: suite.client.ClientID}

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Return(fmt.Errorf("%w: client already has a draft", apperrors.ErrDraftExists)).Once()

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDraftExists)
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_InactiveClient() {
	ctx := context.Background()
	inactive := suite.client
	inactive.IsActive = false

	suite.mockClientRepo.On("FindClientByID", ctx, inactive.ClientID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateDraft(ctx, dto.CreateInvoiceRequest{ClientID: inactive.ClientID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssue_AssignsNumberAndPosts() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	entryID := uuid.NewString()
	year := time.Now().UTC().Year()

	draft := domain.Invoice{
		InvoiceID: invoiceID,
		ClientID:  suite.client.ClientID,
		Status:    domain.InvoiceDraft,
	}
	recomputed := draft
	recomputed.Subtotal = decimal.NewFromInt(1000)
	recomputed.Total = decimal.NewFromInt(1000)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).
		Return([]domain.InvoiceLine{{LineID: uuid.NewString()}}, nil).Once()
	suite.mockInvoiceRepo.On("RecomputeTotalsInTx", ctx, nil, invoiceID, suite.userID).Return(&recomputed, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockInvoiceRepo.On("NextSequenceInTx", ctx, nil, year).Return(7, nil).Once()
	suite.mockPostingSvc.On("PostInvoiceIssued", ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == fmt.Sprintf("%d-007", year) && inv.Total.Equal(decimal.NewFromInt(1000))
	}), suite.userID).Return(entryID, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceIssued && inv.PostingStatus == domain.Posted && inv.Sequence == 7
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()

	result, err := suite.service.Issue(ctx, invoiceID, false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(fmt.Sprintf("%d-007", year), result.InvoiceNumber)
	suite.Equal(entryID, result.EntryID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestIssue_KeepsExistingNumberOnReissue() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	draft := domain.Invoice{
		InvoiceID:     invoiceID,
		ClientID:      suite.client.ClientID,
		Status:        domain.InvoiceDraft,
		InvoiceNumber: "2025-003",
		InvoiceYear:   2025,
		Sequence:      3,
	}
	recomputed := draft
	recomputed.Total = decimal.NewFromInt(400)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).
		Return([]domain.InvoiceLine{{LineID: uuid.NewString()}}, nil).Once()
	suite.mockInvoiceRepo.On("RecomputeTotalsInTx", ctx, nil, invoiceID, suite.userID).Return(&recomputed, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockPostingSvc.On("PostInvoiceIssued", ctx, nil, mock.AnythingOfType("domain.Invoice"), suite.userID).
		Return(uuid.NewString(), nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, nil, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()

	result, err := suite.service.Issue(ctx, invoiceID, false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("2025-003", result.InvoiceNumber)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "NextSequenceInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssue_NotDraft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issued := domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceIssued}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()

	_, err := suite.service.Issue(ctx, invoiceID, false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotDraft)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssue_EmptyWithoutConfirmation() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceLine{}, nil).Once()

	_, err := suite.service.Issue(ctx, invoiceID, false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoLinesAttached)
}

func (suite *InvoiceServiceTestSuite) TestVoid_IssuedInvoice_ReversesAndUnlinks() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	lineID := uuid.NewString()
	timeEntryID := uuid.NewString()

	issued := domain.Invoice{
		InvoiceID:     invoiceID,
		ClientID:      suite.client.ClientID,
		Status:        domain.InvoiceIssued,
		InvoiceNumber: "2026-004",
		PostingStatus: domain.Posted,
	}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()
	suite.mockPaymentRepo.On("CountApplicationsForInvoiceInTx", ctx, nil, invoiceID).Return(0, nil).Once()
	suite.mockPostingSvc.On("ReverseInvoice", ctx, nil, mock.AnythingOfType("domain.Invoice"), suite.userID).
		Return(uuid.NewString(), nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).
		Return([]domain.InvoiceLine{{LineID: lineID, InvoiceID: invoiceID}}, nil).Once()
	suite.mockBillingRepo.On("FindItemsByLineIDsInTx", ctx, nil, []string{lineID}).
		Return([]domain.TimeEntry{{TimeEntryID: timeEntryID}}, []domain.Expense{}, nil).Once()
	suite.mockBillingRepo.On("LinkTimeEntryInTx", ctx, nil, timeEntryID, (*string)(nil), domain.Unbilled, suite.userID).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceVoid && inv.PostingStatus == domain.Unposted
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()

	err := suite.service.Void(ctx, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockBillingRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestVoid_WithPayments_Fails() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issued := domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceIssued}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()
	suite.mockPaymentRepo.On("CountApplicationsForInvoiceInTx", ctx, nil, invoiceID).Return(2, nil).Once()

	err := suite.service.Void(ctx, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasPayments)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "ReverseInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestReturnToDraft_KeepsNumber() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issued := domain.Invoice{
		InvoiceID:     invoiceID,
		Status:        domain.InvoiceIssued,
		InvoiceNumber: "2026-009",
		PostingStatus: domain.Posted,
	}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()
	suite.mockPaymentRepo.On("CountApplicationsForInvoiceInTx", ctx, nil, invoiceID).Return(0, nil).Once()
	suite.mockPostingSvc.On("ReverseInvoice", ctx, nil, mock.AnythingOfType("domain.Invoice"), suite.userID).
		Return(uuid.NewString(), nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceDraft &&
			inv.PostingStatus == domain.Unposted &&
			inv.InvoiceNumber == "2026-009"
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()

	err := suite.service.ReturnToDraft(ctx, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestReturnToDraft_NotIssued() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	draft := domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceDraft}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()

	err := suite.service.ReturnToDraft(ctx, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotIssued)
}

func (suite *InvoiceServiceTestSuite) TestAttachItems_ClientMismatch_WritesNothing() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	timeEntryID := uuid.NewString()

	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}
	foreign := domain.TimeEntry{
		TimeEntryID: timeEntryID,
		ClientID:    uuid.NewString(), // different client
		Status:      domain.Unbilled,
	}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockBillingRepo.On("FindTimeEntriesByIDsForUpdate", ctx, nil, []string{timeEntryID}).
		Return(map[string]domain.TimeEntry{timeEntryID: foreign}, nil).Once()
	suite.mockBillingRepo.On("FindExpensesByIDsForUpdate", ctx, nil, []string(nil)).
		Return(map[string]domain.Expense{}, nil).Once()

	_, err := suite.service.AttachItems(ctx, invoiceID, dto.AttachItemsRequest{TimeEntryIDs: []string{timeEntryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClientMismatch)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveLineInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAttachItems_BilledItem_NotEligible() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	timeEntryID := uuid.NewString()
	existingLine := uuid.NewString()

	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}
	billed := domain.TimeEntry{
		TimeEntryID: timeEntryID,
		ClientID:    suite.client.ClientID,
		Status:      domain.Billed,
		InvoiceLine: &existingLine,
	}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockBillingRepo.On("FindTimeEntriesByIDsForUpdate", ctx, nil, []string{timeEntryID}).
		Return(map[string]domain.TimeEntry{timeEntryID: billed}, nil).Once()
	suite.mockBillingRepo.On("FindExpensesByIDsForUpdate", ctx, nil, []string(nil)).
		Return(map[string]domain.Expense{}, nil).Once()

	_, err := suite.service.AttachItems(ctx, invoiceID, dto.AttachItemsRequest{TimeEntryIDs: []string{timeEntryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrItemNotEligible)
}

func (suite *InvoiceServiceTestSuite) TestAttachItems_NamesEveryRejectedItem() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	billedOne := uuid.NewString()
	billedTwo := uuid.NewString()
	unbillable := uuid.NewString()
	existingLine := uuid.NewString()

	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}
	entries := map[string]domain.TimeEntry{
		billedOne: {TimeEntryID: billedOne, ClientID: suite.client.ClientID, Status: domain.Billed, InvoiceLine: &existingLine},
		billedTwo: {TimeEntryID: billedTwo, ClientID: suite.client.ClientID, Status: domain.Billed, InvoiceLine: &existingLine},
	}
	expenses := map[string]domain.Expense{
		unbillable: {ExpenseID: unbillable, ClientID: suite.client.ClientID, Status: domain.Unbilled, Billable: false},
	}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockBillingRepo.On("FindTimeEntriesByIDsForUpdate", ctx, nil, []string{billedOne, billedTwo}).
		Return(entries, nil).Once()
	suite.mockBillingRepo.On("FindExpensesByIDsForUpdate", ctx, nil, []string{unbillable}).
		Return(expenses, nil).Once()

	_, err := suite.service.AttachItems(ctx, invoiceID,
		dto.AttachItemsRequest{TimeEntryIDs: []string{billedOne, billedTwo}, ExpenseIDs: []string{unbillable}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrItemNotEligible)
	suite.Contains(err.Error(), billedOne)
	suite.Contains(err.Error(), billedTwo)
	suite.Contains(err.Error(), unbillable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveLineInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAttachItems_LinksAndRecomputes() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	timeEntryID := uuid.NewString()

	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}
	entry := domain.TimeEntry{
		TimeEntryID: timeEntryID,
		ClientID:    suite.client.ClientID,
		WorkDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Hours:       decimal.NewFromFloat(2.5),
		Description: "API integration",
		BillingRate: decimal.NewFromInt(150),
		Status:      domain.Unbilled,
	}
	recomputed := draft
	recomputed.Subtotal = decimal.NewFromFloat(375)
	recomputed.Total = decimal.NewFromFloat(375)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockBillingRepo.On("FindTimeEntriesByIDsForUpdate", ctx, nil, []string{timeEntryID}).
		Return(map[string]domain.TimeEntry{timeEntryID: entry}, nil).Once()
	suite.mockBillingRepo.On("FindExpensesByIDsForUpdate", ctx, nil, []string(nil)).
		Return(map[string]domain.Expense{}, nil).Once()
	suite.mockInvoiceRepo.On("SaveLineInTx", ctx, nil, mock.MatchedBy(func(line domain.InvoiceLine) bool {
		return line.LineType == domain.LineTime &&
			line.Description == "2026-03-14 - API integration" &&
			line.Quantity.Equal(decimal.NewFromFloat(2.5)) &&
			line.UnitPrice.Equal(decimal.NewFromInt(150)) &&
			line.LineTotal.Equal(decimal.NewFromFloat(375))
	})).Return(nil).Once()
	suite.mockBillingRepo.On("LinkTimeEntryInTx", ctx, nil, timeEntryID, mock.AnythingOfType("*string"), domain.Billed, suite.userID).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("RecomputeTotalsInTx", ctx, nil, invoiceID, suite.userID).Return(&recomputed, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&recomputed, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).
		Return([]domain.InvoiceLine{{LineID: uuid.NewString(), InvoiceID: invoiceID}}, nil).Once()

	invoice, err := suite.service.AttachItems(ctx, invoiceID, dto.AttachItemsRequest{TimeEntryIDs: []string{timeEntryID}}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.Total.Equal(decimal.NewFromFloat(375)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockBillingRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestAddManualLine_AdjustmentRecomputesTotals() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	draft := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceDraft}
	recomputed := draft
	recomputed.Subtotal = decimal.NewFromInt(-50)
	recomputed.Total = decimal.NewFromInt(-50)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&draft, nil).Once()
	suite.mockInvoiceRepo.On("SaveLineInTx", ctx, nil, mock.MatchedBy(func(line domain.InvoiceLine) bool {
		return line.LineType == domain.LineAdjustment &&
			line.Description == "Goodwill discount" &&
			line.Quantity.Equal(decimal.NewFromInt(1)) &&
			line.UnitPrice.Equal(decimal.NewFromInt(-50)) &&
			line.LineTotal.Equal(decimal.NewFromInt(-50))
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("RecomputeTotalsInTx", ctx, nil, invoiceID, suite.userID).Return(&recomputed, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&recomputed, nil).Once()
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, invoiceID).
		Return([]domain.InvoiceLine{{LineID: uuid.NewString(), InvoiceID: invoiceID, LineType: domain.LineAdjustment}}, nil).Once()

	req := dto.AddInvoiceLineRequest{
		LineType:    "ADJUSTMENT",
		Description: "Goodwill discount",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(-50),
	}
	invoice, err := suite.service.AddManualLine(ctx, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(-50)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestAddManualLine_NotDraft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issued := domain.Invoice{InvoiceID: invoiceID, ClientID: suite.client.ClientID, Status: domain.InvoiceIssued}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()

	req := dto.AddInvoiceLineRequest{
		LineType:    "GENERAL",
		Description: "Consulting retainer",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(200),
	}
	_, err := suite.service.AddManualLine(ctx, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotDraft)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveLineInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAddManualLine_ZeroQuantity() {
	ctx := context.Background()

	req := dto.AddInvoiceLineRequest{
		LineType:    "GENERAL",
		Description: "Consulting retainer",
		UnitPrice:   decimal.NewFromInt(200),
	}
	_, err := suite.service.AddManualLine(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteDraft_NotDraft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issued := domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceIssued}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoiceID).Return(&issued, nil).Once()

	err := suite.service.DeleteDraft(ctx, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotDraft)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
