package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// Listing описывает товар, выставленный продавцом на продажу.
// Объявления никогда не удаляются: история сохраняется для аудита.
type Listing struct {
	ID          string                    `db:"id" json:"id"`
	SellerID    uuid.UUID                 `db:"seller_id" json:"seller_id"`
	Name        string                    `db:"name" json:"name"`
	Description string                    `db:"description" json:"description"`
	Location    string                    `db:"location" json:"location"`
	ImageURL    string                    `db:"image_url" json:"image_url"`
	PriceWei    int64                     `db:"price_wei" json:"price_wei"`
	Status      valueobject.ListingStatus `db:"status" json:"status"`
	OrderID     *string                   `db:"order_id" json:"order_id,omitempty"`
	CreatedAt   time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                 `db:"updated_at" json:"updated_at"`
}
