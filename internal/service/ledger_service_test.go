package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/marketplace-backend/internal/events"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type mockLedgerRepo struct {
	mock.Mock
}

func (m *mockLedgerRepo) GetBalance(ctx context.Context, accountID uuid.UUID) (*models.Balance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *mockLedgerRepo) TotalHeld(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerRepo) Deposit(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Balance, error) {
	args := m.Called(ctx, accountID, amountWei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *mockLedgerRepo) CreateWithdrawal(ctx context.Context, accountID uuid.UUID, amountWei int64) (*models.Withdrawal, error) {
	args := m.Called(ctx, accountID, amountWei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Withdrawal), args.Error(1)
}

func (m *mockLedgerRepo) ListWithdrawals(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.Withdrawal, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

func (m *mockLedgerRepo) ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]models.LedgerTransaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]models.LedgerTransaction), args.Error(1)
}

func TestLedgerService_Deposit_Success(t *testing.T) {
	repo := new(mockLedgerRepo)
	notifier := &recordingNotifier{}
	svc := NewLedgerService(repo, notifier)
	ctx := context.Background()
	accountID := uuid.New()

	expected := &models.Balance{AccountID: accountID, BalanceWei: 1500}
	repo.On("Deposit", ctx, accountID, int64(1500)).Return(expected, nil)

	balance, err := svc.Deposit(ctx, accountID, 1500)
	assert.NoError(t, err)
	assert.Equal(t, expected, balance)
	assert.Equal(t, []string{events.KindDepositReceived}, notifier.kinds())
	repo.AssertExpectations(t)
}

func TestLedgerService_Deposit_InvalidAmount(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, uuid.New(), 0)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Deposit(ctx, uuid.New(), -100)
	assert.True(t, apperror.IsValidation(err))

	repo.AssertNotCalled(t, "Deposit")
}

func TestLedgerService_BalanceOf(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()
	accountID := uuid.New()

	expected := &models.Balance{AccountID: accountID, BalanceWei: 2500}
	repo.On("GetBalance", ctx, accountID).Return(expected, nil)

	balance, err := svc.BalanceOf(ctx, accountID)
	assert.NoError(t, err)
	assert.Equal(t, expected, balance)
}

func TestLedgerService_BalanceOf_UnknownAccount(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()
	accountID := uuid.New()

	repo.On("GetBalance", ctx, accountID).Return(nil, repository.ErrBalanceNotFound)

	// Участник без движений по леджеру: нулевой баланс, а не ошибка.
	balance, err := svc.BalanceOf(ctx, accountID)
	assert.NoError(t, err)
	assert.Equal(t, accountID, balance.AccountID)
	assert.Equal(t, int64(0), balance.BalanceWei)
}

func TestLedgerService_RequestWithdrawal_InsufficientFunds(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()
	accountID := uuid.New()

	repo.On("CreateWithdrawal", ctx, accountID, int64(9000)).Return(nil, repository.ErrInsufficientFunds)

	_, err := svc.RequestWithdrawal(ctx, accountID, 9000)
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
}

func TestLedgerService_RequestWithdrawal_Success(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()
	accountID := uuid.New()

	expected := &models.Withdrawal{ID: uuid.New(), AccountID: accountID, AmountWei: 700, Status: models.WithdrawalStatusPending}
	repo.On("CreateWithdrawal", ctx, accountID, int64(700)).Return(expected, nil)

	withdrawal, err := svc.RequestWithdrawal(ctx, accountID, 700)
	assert.NoError(t, err)
	assert.Equal(t, expected, withdrawal)
}

func TestLedgerService_ListTransactions_ClampsPagination(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()
	accountID := uuid.New()

	repo.On("ListTransactions", ctx, accountID, 20, 0).Return([]models.LedgerTransaction{}, nil)

	_, err := svc.ListTransactions(ctx, accountID, 500, -3)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLedgerService_TotalHeld(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()

	repo.On("TotalHeld", ctx).Return(int64(4200), nil)

	total, err := svc.TotalHeld(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(4200), total)
}
