package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceNotFound   = errors.New("balance not found")
)

// LedgerRepository отвечает за балансы участников и журнал движений средств.
// Все изменения балансов — и здесь, и в OrderRepository — проходят только
// через creditBalance/debitBalance внутри одной транзакции БД, поэтому
// частично применённое движение средств снаружи не наблюдаемо.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository создаёт новый экземпляр.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetBalance возвращает баланс участника. Чтение ничего не мутирует:
// если строки баланса ещё нет, возвращается ErrBalanceNotFound.
func (r *LedgerRepository) GetBalance(ctx context.Context, accountID uuid.UUID) (*models.Balance, error) {
	var balance models.Balance
	query := `SELECT account_id, balance_wei, updated_at FROM balances WHERE account_id = $1`
	if err := r.db.GetContext(ctx, &balance, query, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBalanceNotFound
		}
		return nil, fmt.Errorf("ledger repository: get balance %w", err)
	}
	return &balance, nil
}

// TotalHeld возвращает суммарный объём средств, удерживаемых системой.
func (r *LedgerRepository) TotalHeld(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(balance_wei), 0) FROM balances`
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("ledger repository: total held %w", err)
	}
	return total, nil
}

// Deposit зачисляет добровольный платёж на баланс участника.
// Никаких побочных эффектов на объявления или заказы нет.
func (r *LedgerRepository) Deposit(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Balance, error) {
	var balance models.Balance
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := creditBalance(ctx, tx, accountID, nil, models.LedgerTypeDeposit, amountWei); err != nil {
			return err
		}
		return tx.GetContext(ctx, &balance,
			`SELECT account_id, balance_wei, updated_at FROM balances WHERE account_id = $1`, accountID)
	})
	if err != nil {
		return nil, fmt.Errorf("ledger repository: deposit %w", err)
	}
	return &balance, nil
}

// CreateWithdrawal списывает средства с баланса и создаёт заявку на вывод.
// Выплата наружу — отдельный внешний шаг (pull-payment).
func (r *LedgerRepository) CreateWithdrawal(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := debitBalance(ctx, tx, accountID, nil, models.LedgerTypeWithdrawal, amountWei); err != nil {
			return err
		}
		return tx.GetContext(ctx, &withdrawal, `
			INSERT INTO withdrawals (account_id, amount_wei, status)
			VALUES ($1, $2, 'pending')
			RETURNING id, account_id, amount_wei, status, created_at, processed_at
		`, accountID, amountWei)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("ledger repository: create withdrawal %w", err)
	}
	return &withdrawal, nil
}

// ListWithdrawals возвращает заявки участника на вывод средств.
func (r *LedgerRepository) ListWithdrawals(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT id, account_id, amount_wei, status, created_at, processed_at
		FROM withdrawals WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	return withdrawals, err
}

// ListTransactions возвращает журнал движений средств участника.
func (r *LedgerRepository) ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.LedgerTransaction, error) {
	var transactions []models.LedgerTransaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT id, account_id, order_id, type, amount_wei, created_at
		FROM ledger_transactions WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	return transactions, err
}

// creditBalance увеличивает баланс участника и пишет запись в журнал.
// Зачисление никогда само по себе не выполняет внешний перевод.
func creditBalance(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, orderID *string, ledgerType string, amountWei int64) error {
	if amountWei < 0 {
		return fmt.Errorf("credit: отрицательная сумма %d", amountWei)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO balances (account_id, balance_wei)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET balance_wei = balances.balance_wei + $2, updated_at = NOW()
	`, accountID, amountWei)
	if err != nil {
		return fmt.Errorf("credit: update balance %w", err)
	}

	return appendLedgerRow(ctx, tx, accountID, orderID, ledgerType, amountWei)
}

// debitBalance уменьшает баланс участника под блокировкой строки.
// Возвращает ErrInsufficientFunds, если средств не хватает.
func debitBalance(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, orderID *string, ledgerType string, amountWei int64) error {
	if amountWei < 0 {
		return fmt.Errorf("debit: отрицательная сумма %d", amountWei)
	}

	var current int64
	err := tx.GetContext(ctx, &current,
		`SELECT balance_wei FROM balances WHERE account_id = $1 FOR UPDATE`, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientFunds
		}
		return fmt.Errorf("debit: lock balance %w", err)
	}
	if current < amountWei {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE balances SET balance_wei = balance_wei - $2, updated_at = NOW()
		WHERE account_id = $1
	`, accountID, amountWei)
	if err != nil {
		return fmt.Errorf("debit: update balance %w", err)
	}

	return appendLedgerRow(ctx, tx, accountID, orderID, ledgerType, amountWei)
}

// appendLedgerRow добавляет неизменяемую запись в журнал движений.
func appendLedgerRow(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, orderID *string, ledgerType string, amountWei int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_transactions (account_id, order_id, type, amount_wei)
		VALUES ($1, $2, $3, $4)
	`, accountID, orderID, ledgerType, amountWei)
	if err != nil {
		return fmt.Errorf("ledger: append row %w", err)
	}
	return nil
}
