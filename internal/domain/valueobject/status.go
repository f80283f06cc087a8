package valueobject

// ListingStatus — статус объявления в каталоге.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusPurchased ListingStatus = "purchased"
)

// CanTransitionTo описывает жизненный цикл объявления: единственный допустимый
// переход — продажа. Обратного пути в available нет.
func (s ListingStatus) CanTransitionTo(newStatus ListingStatus) bool {
	return s == ListingStatusAvailable && newStatus == ListingStatusPurchased
}

// OrderStatus — статус заказа в машине состояний расчётов.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal сообщает, закрыт ли заказ. Из completed и cancelled переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo разрешает только закрытие открытого заказа.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusOpen:      {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted: {},
		OrderStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}
