package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/events"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/ident"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

// OrderRepository описывает взаимодействие сервиса с машиной состояний заказа.
type OrderRepository interface {
	Purchase(ctx context.Context, orderID, listingID string, buyerID uuid.UUID, paidWei int64) (*models.Order, error)
	ApplySignal(ctx context.Context, orderID string, callerID uuid.UUID, party valueobject.Party, kind valueobject.SignalKind, value bool) (*models.Order, valueobject.Outcome, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByParticipant(ctx context.Context, accountID uuid.UUID) ([]models.Order, error)
}

// OrderService — фасад над жизненным циклом заказа: покупка, двустороннее
// одобрение расчёта и двусторонняя отмена.
type OrderService struct {
	repo     OrderRepository
	notifier events.Notifier
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(repo OrderRepository, notifier events.Notifier) *OrderService {
	return &OrderService{repo: repo, notifier: notifier}
}

// BuyItem проводит покупку объявления: оплата уходит в эскроу на баланс
// покупателя, объявление помечается проданным, создаётся открытый заказ.
func (s *OrderService) BuyItem(ctx context.Context, buyerID uuid.UUID, listingID string, paidWei int64) (*models.Order, error) {
	if paidWei < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "сумма оплаты не может быть отрицательной")
	}

	order, err := s.repo.Purchase(ctx, ident.NewOrderID(), listingID, buyerID, paidWei)
	if err != nil {
		return nil, s.mapPurchaseError(err)
	}

	s.emitToParties(order, events.KindOrderCreated)

	return order, nil
}

// SellerApprove выставляет одобрение продавца по открытому заказу.
func (s *OrderService) SellerApprove(ctx context.Context, callerID uuid.UUID, orderID string, approve bool) (*models.Order, error) {
	return s.applySignal(ctx, callerID, orderID, valueobject.PartySeller, valueobject.SignalApproval, approve)
}

// BuyerApprove выставляет одобрение покупателя по открытому заказу.
func (s *OrderService) BuyerApprove(ctx context.Context, callerID uuid.UUID, orderID string, approve bool) (*models.Order, error) {
	return s.applySignal(ctx, callerID, orderID, valueobject.PartyBuyer, valueobject.SignalApproval, approve)
}

// BuyerCancel фиксирует намерение покупателя отменить заказ.
func (s *OrderService) BuyerCancel(ctx context.Context, callerID uuid.UUID, orderID string) (*models.Order, error) {
	return s.applySignal(ctx, callerID, orderID, valueobject.PartyBuyer, valueobject.SignalCancellation, true)
}

// SellerCancel фиксирует намерение продавца отменить заказ.
func (s *OrderService) SellerCancel(ctx context.Context, callerID uuid.UUID, orderID string) (*models.Order, error) {
	return s.applySignal(ctx, callerID, orderID, valueobject.PartySeller, valueobject.SignalCancellation, true)
}

// GetOrder возвращает заказ. Как и объявления, заказы читаемы публично.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListMyOrders возвращает заказы, где участник — одна из сторон.
func (s *OrderService) ListMyOrders(ctx context.Context, accountID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByParticipant(ctx, accountID)
}

func (s *OrderService) applySignal(ctx context.Context, callerID uuid.UUID, orderID string, party valueobject.Party, kind valueobject.SignalKind, value bool) (*models.Order, error) {
	order, outcome, err := s.repo.ApplySignal(ctx, orderID, callerID, party, kind, value)
	if err != nil {
		return nil, s.mapSignalError(err, orderID)
	}

	switch outcome {
	case valueobject.OutcomeComplete:
		s.emitToParties(order, events.KindOrderCompleted)
	case valueobject.OutcomeCancel:
		s.emitToParties(order, events.KindOrderCancelled)
	}

	return order, nil
}

func (s *OrderService) mapPurchaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrListingNotFound):
		return apperror.ErrListingNotFound
	case errors.Is(err, repository.ErrListingNotAvailable):
		return apperror.ErrListingAlreadySold
	case errors.Is(err, repository.ErrSelfPurchase):
		return apperror.New(apperror.ErrCodeValidation, "продавец не может купить собственный товар")
	case errors.Is(err, repository.ErrInsufficientPayment):
		return apperror.ErrInsufficientPayment
	case errors.Is(err, repository.ErrOverpayment):
		return apperror.New(apperror.ErrCodeValidation, "оплата должна точно совпадать с ценой объявления")
	default:
		return err
	}
}

func (s *OrderService) mapSignalError(err error, orderID string) error {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return apperror.ErrOrderNotFound
	case errors.Is(err, repository.ErrNotParticipant):
		return apperror.New(apperror.ErrCodeForbidden, "вызывающая сторона не участвует в заказе")
	case errors.Is(err, repository.ErrOrderNotOpen):
		return apperror.ErrOrderNotOpen
	case errors.Is(err, repository.ErrInsufficientFunds):
		// По правилам эскроу баланс покупателя всегда покрывает сумму заказа.
		// Если списание всё же не прошло — это нарушение инварианта, а не
		// ошибка пользователя.
		if logger.Log != nil {
			logger.Log.WithField("order_id", orderID).Error("нарушение инварианта леджера: эскроу не покрывает сумму заказа")
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "внутренняя ошибка расчёта")
	default:
		return err
	}
}

func (s *OrderService) emitToParties(order *models.Order, kind string) {
	if s.notifier == nil {
		return
	}

	payload := events.OrderPayload{
		OrderID:   order.ID,
		ListingID: order.ListingID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		AmountWei: order.AmountWei,
	}

	for _, accountID := range []uuid.UUID{order.BuyerID, order.SellerID} {
		if err := s.notifier.Notify(accountID, kind, payload); err != nil && logger.Log != nil {
			logger.Log.WithError(err).WithField("kind", kind).Warn("не удалось доставить уведомление")
		}
	}
}
