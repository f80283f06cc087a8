package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotOpen        = errors.New("order is not open")
	ErrListingNotAvailable = errors.New("listing is not available")
	ErrInsufficientPayment = errors.New("buyer didn't send enough wei")
	ErrOverpayment         = errors.New("payment exceeds listing price")
	ErrSelfPurchase        = errors.New("seller cannot buy own listing")
	ErrNotParticipant      = errors.New("caller is not a participant of the order")
)

// OrderRepository реализует машину состояний заказа поверх Postgres.
// Каждая мутация — одна транзакция: блокировка строк объявления/заказа
// через FOR UPDATE сериализует конкурирующие переходы, а все движения
// средств идут через creditBalance/debitBalance из леджера.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository создаёт новый экземпляр.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, listing_id, seller_id, buyer_id, amount_wei,
	buyer_approved, seller_approved, buyer_cancel_requested, seller_cancel_requested,
	status, created_at, updated_at, settled_at`

// GetByID возвращает заказ по идентификатору.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get by id %w", err)
	}
	return &order, nil
}

// ListByParticipant возвращает заказы, где участник — покупатель или продавец.
func (r *OrderRepository) ListByParticipant(ctx context.Context, accountID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id = $1 OR seller_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &orders, query, accountID); err != nil {
		return nil, fmt.Errorf("order repository: list by participant %w", err)
	}
	return orders, nil
}

// Purchase атомарно проводит покупку объявления: проверяет доступность и
// оплату, зачисляет эскроу на баланс покупателя, создаёт открытый заказ и
// помечает объявление проданным. При любой ошибке состояние не меняется.
func (r *OrderRepository) Purchase(ctx context.Context, orderID, listingID string, buyerID uuid.UUID, paidWei int64) (*models.Order, error) {
	var order models.Order
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var listing models.Listing
		err := tx.GetContext(ctx, &listing, `
			SELECT id, seller_id, price_wei, status
			FROM listings WHERE id = $1 FOR UPDATE
		`, listingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrListingNotFound
			}
			return fmt.Errorf("lock listing: %w", err)
		}

		if !listing.Status.CanTransitionTo(valueobject.ListingStatusPurchased) {
			return ErrListingNotAvailable
		}
		if listing.SellerID == buyerID {
			return ErrSelfPurchase
		}
		if paidWei < listing.PriceWei {
			return ErrInsufficientPayment
		}
		// Политика: принимаем только точную оплату, излишек отклоняем.
		if paidWei > listing.PriceWei {
			return ErrOverpayment
		}

		err = tx.GetContext(ctx, &order, `
			INSERT INTO orders (id, listing_id, seller_id, buyer_id, amount_wei)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+orderColumns+`
		`, orderID, listing.ID, listing.SellerID, buyerID, listing.PriceWei)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		// Эскроу: оплата зачисляется на баланс покупателя, а не продавцу.
		if err := creditBalance(ctx, tx, buyerID, &orderID, models.LedgerTypeEscrowHold, paidWei); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE listings SET status = $2, order_id = $3, updated_at = NOW() WHERE id = $1
		`, listing.ID, valueobject.ListingStatusPurchased, orderID)
		if err != nil {
			return fmt.Errorf("mark listing purchased: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ApplySignal выставляет флаг одобрения или отмены от имени вызывающей
// стороны и, если обе стороны сошлись, атомарно проводит расчёт или возврат.
// Возвращает обновлённый заказ и исход сверки сигналов.
func (r *OrderRepository) ApplySignal(ctx context.Context, orderID string, callerID uuid.UUID, party valueobject.Party, kind valueobject.SignalKind, value bool) (*models.Order, valueobject.Outcome, error) {
	var (
		order   models.Order
		outcome valueobject.Outcome
	)

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &order, `
			SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE
		`, orderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		switch party {
		case valueobject.PartyBuyer:
			if order.BuyerID != callerID {
				return ErrNotParticipant
			}
		case valueobject.PartySeller:
			if order.SellerID != callerID {
				return ErrNotParticipant
			}
		default:
			return fmt.Errorf("unknown party %q", party)
		}

		if order.Status.IsTerminal() {
			return ErrOrderNotOpen
		}

		signals := valueobject.Signals{
			BuyerApproved:         order.BuyerApproved,
			SellerApproved:        order.SellerApproved,
			BuyerCancelRequested:  order.BuyerCancelRequested,
			SellerCancelRequested: order.SellerCancelRequested,
		}.Apply(party, kind, value)

		outcome = signals.Resolve()

		status := nextOrderStatus(order.Status, outcome)
		if status != order.Status && !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("недопустимый переход статуса заказа %s -> %s", order.Status, status)
		}

		for _, move := range settlementMoves(&order, outcome) {
			if move.debit {
				err = debitBalance(ctx, tx, move.accountID, &order.ID, move.ledgerType, move.amountWei)
			} else {
				err = creditBalance(ctx, tx, move.accountID, &order.ID, move.ledgerType, move.amountWei)
			}
			if err != nil {
				return err
			}
		}

		err = tx.GetContext(ctx, &order, `
			UPDATE orders
			SET buyer_approved = $2,
			    seller_approved = $3,
			    buyer_cancel_requested = $4,
			    seller_cancel_requested = $5,
			    status = $6,
			    settled_at = CASE WHEN $6 <> 'open' THEN NOW() ELSE settled_at END,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING `+orderColumns+`
		`, order.ID, signals.BuyerApproved, signals.SellerApproved,
			signals.BuyerCancelRequested, signals.SellerCancelRequested, status)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, valueobject.OutcomeNone, err
	}

	return &order, outcome, nil
}

// balanceMove — одно движение средств при закрытии заказа.
type balanceMove struct {
	accountID  uuid.UUID
	ledgerType string
	amountWei  int64
	debit      bool
}

// settlementMoves переводит исход сверки сигналов в движения по леджеру.
// Обоюдное одобрение: эскроу списывается с покупателя и зачисляется продавцу.
// Обоюдная отмена: эскроу списывается с покупателя (возврат наружу).
// Неразрешённый исход не двигает средства вовсе.
func settlementMoves(order *models.Order, outcome valueobject.Outcome) []balanceMove {
	switch outcome {
	case valueobject.OutcomeComplete:
		return []balanceMove{
			{accountID: order.BuyerID, ledgerType: models.LedgerTypeEscrowRelease, amountWei: order.AmountWei, debit: true},
			{accountID: order.SellerID, ledgerType: models.LedgerTypeEscrowRelease, amountWei: order.AmountWei},
		}
	case valueobject.OutcomeCancel:
		return []balanceMove{
			{accountID: order.BuyerID, ledgerType: models.LedgerTypeRefundPayout, amountWei: order.AmountWei, debit: true},
		}
	}
	return nil
}

// nextOrderStatus возвращает статус заказа после сверки сигналов.
func nextOrderStatus(current valueobject.OrderStatus, outcome valueobject.Outcome) valueobject.OrderStatus {
	switch outcome {
	case valueobject.OutcomeComplete:
		return valueobject.OrderStatusCompleted
	case valueobject.OutcomeCancel:
		return valueobject.OrderStatusCancelled
	}
	return current
}
