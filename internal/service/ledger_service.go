package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/events"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/validation"
)

// LedgerRepositoryIface описывает взаимодействие сервиса с леджером.
type LedgerRepositoryIface interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (*models.Balance, error)
	TotalHeld(ctx context.Context) (int64, error)
	Deposit(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Balance, error)
	CreateWithdrawal(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Withdrawal, error)
	ListWithdrawals(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.Withdrawal, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.LedgerTransaction, error)
}

// LedgerService открывает доступ к балансам, пополнениям и выводу средств.
type LedgerService struct {
	repo     LedgerRepositoryIface
	notifier events.Notifier
}

// NewLedgerService создаёт сервис леджера.
func NewLedgerService(repo LedgerRepositoryIface, notifier events.Notifier) *LedgerService {
	return &LedgerService{repo: repo, notifier: notifier}
}

// Deposit зачисляет добровольный платёж на баланс участника.
func (s *LedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Balance, error) {
	if err := validation.ValidateAmountWei(amountWei); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	balance, err := s.repo.Deposit(ctx, accountID, amountWei)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		payload := events.DepositPayload{AccountID: accountID, AmountWei: amountWei}
		if err := s.notifier.Notify(accountID, events.KindDepositReceived, payload); err != nil && logger.Log != nil {
			logger.Log.WithError(err).Warn("не удалось доставить уведомление о пополнении")
		}
	}

	return balance, nil
}

// BalanceOf возвращает текущий баланс участника. Запрос ничего не мутирует:
// для участника без движений по леджеру возвращается нулевой баланс.
func (s *LedgerService) BalanceOf(ctx context.Context, accountID uuid.UUID) (*models.Balance, error) {
	balance, err := s.repo.GetBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrBalanceNotFound) {
			return &models.Balance{AccountID: accountID}, nil
		}
		return nil, err
	}
	return balance, nil
}

// TotalHeld возвращает суммарный объём средств под управлением системы.
func (s *LedgerService) TotalHeld(ctx context.Context) (int64, error) {
	return s.repo.TotalHeld(ctx)
}

// RequestWithdrawal списывает средства с баланса и ставит заявку на выплату.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Withdrawal, error) {
	if err := validation.ValidateAmountWei(amountWei); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	withdrawal, err := s.repo.CreateWithdrawal(ctx, accountID, amountWei)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, apperror.ErrInsufficientFunds
		}
		return nil, err
	}

	return withdrawal, nil
}

// ListWithdrawals возвращает заявки участника на вывод средств.
func (s *LedgerService) ListWithdrawals(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.Withdrawal, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListWithdrawals(ctx, accountID, limit, offset)
}

// ListTransactions возвращает журнал движений средств участника.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.LedgerTransaction, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListTransactions(ctx, accountID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
