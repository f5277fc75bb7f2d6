package dto

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines data for paying a set of approved time entries.
type CreatePaymentRequest struct {
	UserID       string          `json:"userID" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate  string          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	PeriodStart  string          `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd    string          `json:"periodEnd" binding:"required,datetime=2006-01-02"`
	Description  *string         `json:"description" binding:"omitempty,max=500"`
	TimeEntryIDs []string        `json:"timeEntryIDs" binding:"required,min=1,dive,uuid"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	UserID *string `form:"userId"`
	Limit  int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int     `form:"offset,default=0" binding:"omitempty,min=0"`
}

// BalanceParams defines the optional date range for a balance computation.
type BalanceParams struct {
	From *string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   *string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// PaymentTimeEntryResponse is one allocated slice of a payment.
type PaymentTimeEntryResponse struct {
	TimeEntryID string          `json:"timeEntryID"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string                     `json:"paymentID"`
	UserID      string                     `json:"userID"`
	CreatorID   string                     `json:"creatorID"`
	Amount      decimal.Decimal            `json:"amount"`
	PaymentDate string                     `json:"paymentDate"`
	PeriodStart string                     `json:"periodStart"`
	PeriodEnd   string                     `json:"periodEnd"`
	Status      domain.PaymentStatus       `json:"status"`
	Description *string                    `json:"description,omitempty"`
	ConfirmedAt *time.Time                 `json:"confirmedAt,omitempty"`
	TimeEntries []PaymentTimeEntryResponse `json:"timeEntries,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// ToPaymentResponse converts domain.Payment plus its links to DTO.
func ToPaymentResponse(p *domain.Payment, links []domain.PaymentTimeEntry) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:   p.PaymentID,
		UserID:      p.UserID,
		CreatorID:   p.CreatorID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		Status:      p.Status,
		Description: p.Description,
		ConfirmedAt: p.ConfirmedAt,
		CreatedAt:   p.CreatedAt,
	}
	for _, l := range links {
		resp.TimeEntries = append(resp.TimeEntries, PaymentTimeEntryResponse{
			TimeEntryID: l.TimeEntryID,
			Amount:      l.Amount,
		})
	}
	return resp
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to DTO.
func ToListPaymentsResponse(ps []domain.Payment) ListPaymentsResponse {
	out := make([]PaymentResponse, len(ps))
	for i := range ps {
		out[i] = ToPaymentResponse(&ps[i], nil)
	}
	return ListPaymentsResponse{Payments: out}
}
