package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// Order описывает покупку одного объявления одним покупателем.
// Идентификаторы заказов живут в отдельном пространстве и никогда не
// совпадают с идентификаторами объявлений.
type Order struct {
	ID                    string                  `db:"id" json:"id"`
	ListingID             string                  `db:"listing_id" json:"listing_id"`
	SellerID              uuid.UUID               `db:"seller_id" json:"seller_id"`
	BuyerID               uuid.UUID               `db:"buyer_id" json:"buyer_id"`
	AmountWei             int64                   `db:"amount_wei" json:"amount_wei"`
	BuyerApproved         bool                    `db:"buyer_approved" json:"buyer_approved"`
	SellerApproved        bool                    `db:"seller_approved" json:"seller_approved"`
	BuyerCancelRequested  bool                    `db:"buyer_cancel_requested" json:"buyer_cancel_requested"`
	SellerCancelRequested bool                    `db:"seller_cancel_requested" json:"seller_cancel_requested"`
	Status                valueobject.OrderStatus `db:"status" json:"status"`
	CreatedAt             time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time               `db:"updated_at" json:"updated_at"`
	SettledAt             *time.Time              `db:"settled_at" json:"settled_at,omitempty"`
}
