package dto

import (
	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListingsResponse represents a seller's listings with the live counter
type ListingsResponse struct {
	Listings  []models.Listing `json:"listings"`
	LiveCount int              `json:"live_count"`
}

// BalanceResponse represents an account balance
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	AmountWei int64  `json:"amount_wei"`
}

// NewBalanceResponse creates a BalanceResponse from the model
func NewBalanceResponse(balance *models.Balance) *BalanceResponse {
	return &BalanceResponse{
		AccountID: balance.AccountID.String(),
		AmountWei: balance.BalanceWei,
	}
}

// TotalHeldResponse represents the aggregate amount held by the engine
type TotalHeldResponse struct {
	TotalWei int64 `json:"total_wei"`
}
