package dto

// RegisterRequest represents the request to register an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateListingRequest represents the request to publish a listing
type CreateListingRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	PriceWei    int64  `json:"price_wei"`
}

// UpdateListingRequest represents the request to modify a listing
type UpdateListingRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	PriceWei    int64  `json:"price_wei"`
}

// BuyListingRequest represents the payment attached to a purchase
type BuyListingRequest struct {
	PaidWei int64 `json:"paid_wei"`
}

// ApprovalRequest represents an approval flag from one party of an order
type ApprovalRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// DepositRequest represents a voluntary deposit
type DepositRequest struct {
	AmountWei int64 `json:"amount_wei" binding:"required"`
}

// WithdrawalRequest represents a request to withdraw funds
type WithdrawalRequest struct {
	AmountWei int64 `json:"amount_wei" binding:"required"`
}
