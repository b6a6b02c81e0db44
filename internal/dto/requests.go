package dto

import "github.com/shopspring/decimal"

// TransactionRequest carries one payment to authorize. Card data is limited
// to the BIN prefix and the last four digits.
type TransactionRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,oneof=BRL MXN COP"`
	Country    string          `json:"country" binding:"required"`
	CardBIN    string          `json:"card_bin" binding:"required,len=6,numeric"`
	CardLast4  string          `json:"card_last4" binding:"required,len=4,numeric"`
	CustomerID string          `json:"customer_id" binding:"required"`
}

// AuthorizeRequest is the body of POST /api/v1/authorize.
type AuthorizeRequest struct {
	TransactionRequest
	Strategy string `json:"routing_strategy" binding:"omitempty,oneof=optimize_for_approvals optimize_for_cost balanced"`
}

// BatchAuthorizeRequest routes an ordered collection of transactions under a
// single strategy.
type BatchAuthorizeRequest struct {
	Transactions []TransactionRequest `json:"transactions" binding:"required,min=1,max=500,dive"`
	Strategy     string               `json:"routing_strategy" binding:"omitempty,oneof=optimize_for_approvals optimize_for_cost balanced"`
}

// ReportRequest is the body of POST /api/v1/reports/performance.
type ReportRequest struct {
	TransactionCount int    `json:"transaction_count" binding:"omitempty,min=1,max=5000"`
	Strategy         string `json:"routing_strategy" binding:"omitempty,oneof=optimize_for_approvals optimize_for_cost balanced"`
}
