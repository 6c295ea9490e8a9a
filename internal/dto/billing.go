package dto

import (
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the payload for creating a client.
type CreateClientRequest struct {
	Name            string           `json:"name" binding:"required,max=255"`
	Email           string           `json:"email" binding:"omitempty,email"`
	Phone           string           `json:"phone"`
	BillingAddress  string           `json:"billingAddress"`
	DefaultRate     *decimal.Decimal `json:"defaultRate"`
	PaymentTermsDay int              `json:"paymentTermsDay"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID        string           `json:"clientID"`
	Name            string           `json:"name"`
	Email           string           `json:"email,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	BillingAddress  string           `json:"billingAddress,omitempty"`
	DefaultRate     *decimal.Decimal `json:"defaultRate,omitempty"`
	PaymentTermsDay int              `json:"paymentTermsDay"`
	IsActive        bool             `json:"isActive"`
}

// ToClientResponse converts a domain.Client.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:        c.ClientID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		BillingAddress:  c.BillingAddress,
		DefaultRate:     c.DefaultRate,
		PaymentTermsDay: c.PaymentTermsDay,
		IsActive:        c.IsActive,
	}
}

// CreateTimeEntryRequest defines the payload for logging billable time.
type CreateTimeEntryRequest struct {
	ClientID    string           `json:"clientID" binding:"required"`
	WorkDate    *time.Time       `json:"workDate"`
	Hours       decimal.Decimal  `json:"hours" binding:"required"`
	Description string           `json:"description" binding:"required"`
	BillingRate *decimal.Decimal `json:"billingRate"` // Defaults to the client rate
}

// CreateExpenseRequest defines the payload for logging a billable expense.
type CreateExpenseRequest struct {
	ClientID    string          `json:"clientID" binding:"required"`
	ExpenseDate *time.Time      `json:"expenseDate"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Billable    *bool           `json:"billable"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	TimeEntryID string          `json:"timeEntryID"`
	ClientID    string          `json:"clientID"`
	WorkDate    time.Time       `json:"workDate"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	BillingRate decimal.Decimal `json:"billingRate"`
	Status      string          `json:"status"`
	InvoiceLine *string         `json:"invoiceLineID,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	ClientID    string          `json:"clientID"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Billable    bool            `json:"billable"`
	Status      string          `json:"status"`
	InvoiceLine *string         `json:"invoiceLineID,omitempty"`
}

// UnbilledItemsResponse lists a client's attachable items.
type UnbilledItemsResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	Expenses    []ExpenseResponse   `json:"expenses"`
}

// ToTimeEntryResponse converts a domain.TimeEntry.
func ToTimeEntryResponse(t *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		TimeEntryID: t.TimeEntryID,
		ClientID:    t.ClientID,
		WorkDate:    t.WorkDate,
		Hours:       t.Hours,
		Description: t.Description,
		BillingRate: t.BillingRate,
		Status:      string(t.Status),
		InvoiceLine: t.InvoiceLine,
	}
}

// ToExpenseResponse converts a domain.Expense.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		ClientID:    e.ClientID,
		ExpenseDate: e.ExpenseDate,
		Amount:      e.Amount,
		Description: e.Description,
		Billable:    e.Billable,
		Status:      string(e.Status),
		InvoiceLine: e.InvoiceLine,
	}
}

// ToUnbilledItemsResponse converts unbilled items for the attach picker.
func ToUnbilledItemsResponse(entries []domain.TimeEntry, expenses []domain.Expense) UnbilledItemsResponse {
	resp := UnbilledItemsResponse{
		TimeEntries: make([]TimeEntryResponse, len(entries)),
		Expenses:    make([]ExpenseResponse, len(expenses)),
	}
	for i := range entries {
		resp.TimeEntries[i] = ToTimeEntryResponse(&entries[i])
	}
	for i := range expenses {
		resp.Expenses[i] = ToExpenseResponse(&expenses[i])
	}
	return resp
}
