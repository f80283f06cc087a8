package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// AccountRepository отвечает за работу с аккаунтами участников.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository создаёт новый экземпляр.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create сохраняет новый аккаунт.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, account.Username, account.PasswordHash).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("account repository: create %w", err)
	}
	return nil
}

// GetByID возвращает аккаунт по идентификатору.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return common.GetByID[models.Account](ctx, r.db, "accounts", id, ErrAccountNotFound)
}

// GetByUsername возвращает аккаунт по имени пользователя.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return common.GetByField[models.Account](ctx, r.db, "accounts", "username", username, ErrAccountNotFound)
}
