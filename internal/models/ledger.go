package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы движений по леджеру
const (
	LedgerTypeDeposit       = "deposit"
	LedgerTypeEscrowHold    = "escrow_hold"
	LedgerTypeEscrowRelease = "escrow_release"
	LedgerTypeRefundPayout  = "refund_payout"
	LedgerTypeWithdrawal    = "withdrawal"
)

// Статусы заявок на вывод
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

// Balance представляет текущий баланс участника в wei.
type Balance struct {
	AccountID  uuid.UUID `db:"account_id" json:"account_id"`
	BalanceWei int64     `db:"balance_wei" json:"balance_wei"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LedgerTransaction — неизменяемая запись о движении средств.
// Каждый credit/debit леджера пишет ровно одну такую запись в той же
// транзакции БД, что и изменение баланса.
type LedgerTransaction struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	OrderID   *string   `db:"order_id" json:"order_id,omitempty"`
	Type      string    `db:"type" json:"type"`
	AmountWei int64     `db:"amount_wei" json:"amount_wei"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Withdrawal — заявка на вывод средств (pull-payment). Списание с баланса
// происходит в момент создания заявки, фактическая выплата — внешний процесс.
type Withdrawal struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	AccountID   uuid.UUID  `db:"account_id" json:"account_id"`
	AmountWei   int64      `db:"amount_wei" json:"amount_wei"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time `db:"processed_at" json:"processed_at,omitempty"`
}
