package dto

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest defines data for logging a time entry.
// Date is a calendar day; start and end are wall-clock times on that day.
type CreateTimeEntryRequest struct {
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string  `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   string  `json:"endTime" binding:"required,datetime=15:04"`
	Project   *string `json:"project" binding:"omitempty,max=200"`
}

// UpdateTimeEntryRequest defines the data allowed for editing a time entry.
type UpdateTimeEntryRequest struct {
	Date      *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"endTime" binding:"omitempty,datetime=15:04"`
	Project   *string `json:"project" binding:"omitempty,max=200"`
}

// RejectTimeEntryRequest carries the mandatory rejection reason.
type RejectTimeEntryRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// ListTimeEntriesParams defines query parameters for listing time entries.
type ListTimeEntriesParams struct {
	UserID    *string `form:"userId"`
	From      *string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        *string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Status    *string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	EntryID         string             `json:"entryID"`
	UserID          string             `json:"userID"`
	Date            string             `json:"date"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime"`
	TotalHours      decimal.Decimal    `json:"totalHours"`
	Status          domain.EntryStatus `json:"status"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	Project         *string            `json:"project,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ToTimeEntryResponse converts domain.TimeEntry to DTO.
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		EntryID:         e.EntryID,
		UserID:          e.UserID,
		Date:            e.Date.Format("2006-01-02"),
		StartTime:       e.StartTime.Format("15:04"),
		EndTime:         e.EndTime.Format("15:04"),
		TotalHours:      e.TotalHours,
		Status:          e.Status,
		RejectionReason: e.RejectionReason,
		Project:         e.Project,
		CreatedAt:       e.CreatedAt,
	}
}

// ListTimeEntriesResponse wraps a page of time entries.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	NextToken   *string             `json:"nextToken,omitempty"`
}

// ToListTimeEntriesResponse converts a slice of domain.TimeEntry to DTO.
func ToListTimeEntriesResponse(es []domain.TimeEntry, nextToken *string) ListTimeEntriesResponse {
	out := make([]TimeEntryResponse, len(es))
	for i := range es {
		out[i] = ToTimeEntryResponse(&es[i])
	}
	return ListTimeEntriesResponse{TimeEntries: out, NextToken: nextToken}
}
