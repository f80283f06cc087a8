package events

import "github.com/google/uuid"

// Виды уведомлений, которые движок эмитит наружу. Поле kind уходит
// клиенту в поле "type" WebSocket-сообщения.
const (
	KindListingCreated  = "listing.created"
	KindListingModified = "listing.modified"
	KindOrderCreated    = "order.created"
	KindOrderCompleted  = "order.completed"
	KindOrderCancelled  = "order.cancelled"
	KindDepositReceived = "deposit.received"
)

// ListingPayload — полезная нагрузка событий объявлений.
type ListingPayload struct {
	ListingID string    `json:"listing_id"`
	SellerID  uuid.UUID `json:"seller_id"`
}

// OrderPayload — полезная нагрузка событий заказов.
type OrderPayload struct {
	OrderID   string    `json:"order_id"`
	ListingID string    `json:"listing_id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	AmountWei int64     `json:"amount_wei"`
}

// DepositPayload — полезная нагрузка события пополнения.
type DepositPayload struct {
	AccountID uuid.UUID `json:"account_id"`
	AmountWei int64     `json:"amount_wei"`
}

// Notifier доставляет типизированное событие указанному участнику.
// Доставка отвязана от перехода состояния: переход уже зафиксирован
// в БД к моменту эмита, уведомление — best effort.
type Notifier interface {
	Notify(accountID uuid.UUID, kind string, payload any) error
}
