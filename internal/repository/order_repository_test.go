package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/models"
)

func settlementTestOrder(amountWei int64) *models.Order {
	return &models.Order{
		ID:        "ord_01HTEST0000000000000000000",
		BuyerID:   uuid.New(),
		SellerID:  uuid.New(),
		AmountWei: amountWei,
		Status:    valueobject.OrderStatusOpen,
	}
}

func TestSettlementMoves_Complete(t *testing.T) {
	order := settlementTestOrder(1_000_000)

	moves := settlementMoves(order, valueobject.OutcomeComplete)

	// Обоюдное одобрение: весь эскроу уходит с покупателя продавцу.
	assert.Len(t, moves, 2)

	assert.True(t, moves[0].debit)
	assert.Equal(t, order.BuyerID, moves[0].accountID)
	assert.Equal(t, models.LedgerTypeEscrowRelease, moves[0].ledgerType)
	assert.Equal(t, int64(1_000_000), moves[0].amountWei)

	assert.False(t, moves[1].debit)
	assert.Equal(t, order.SellerID, moves[1].accountID)
	assert.Equal(t, models.LedgerTypeEscrowRelease, moves[1].ledgerType)
	assert.Equal(t, int64(1_000_000), moves[1].amountWei)
}

func TestSettlementMoves_Cancel(t *testing.T) {
	order := settlementTestOrder(200_000)

	moves := settlementMoves(order, valueobject.OutcomeCancel)

	// Обоюдная отмена: эскроу списывается с покупателя целиком, продавец
	// не участвует. Баланс покупателя после списания — ноль.
	assert.Len(t, moves, 1)
	assert.True(t, moves[0].debit)
	assert.Equal(t, order.BuyerID, moves[0].accountID)
	assert.Equal(t, models.LedgerTypeRefundPayout, moves[0].ledgerType)
	assert.Equal(t, int64(200_000), moves[0].amountWei)
	assert.Equal(t, int64(0), order.AmountWei-moves[0].amountWei)
}

func TestSettlementMoves_PendingMovesNothing(t *testing.T) {
	order := settlementTestOrder(1_000_000)

	// Односторонний сигнал не двигает средства.
	assert.Empty(t, settlementMoves(order, valueobject.OutcomeNone))
}

func TestNextOrderStatus(t *testing.T) {
	open := valueobject.OrderStatusOpen

	assert.Equal(t, valueobject.OrderStatusCompleted, nextOrderStatus(open, valueobject.OutcomeComplete))
	assert.Equal(t, valueobject.OrderStatusCancelled, nextOrderStatus(open, valueobject.OutcomeCancel))
	assert.Equal(t, open, nextOrderStatus(open, valueobject.OutcomeNone))

	// Разрешённые исходы всегда дают допустимый переход из open.
	for _, outcome := range []valueobject.Outcome{valueobject.OutcomeComplete, valueobject.OutcomeCancel} {
		assert.True(t, open.CanTransitionTo(nextOrderStatus(open, outcome)))
	}
}
