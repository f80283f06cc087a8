package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// AuthService инкапсулирует регистрацию и аутентификацию участников.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput содержит данные участника при регистрации.
type RegisterInput struct {
	Username string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	Account   *models.Account
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register создаёт новый аккаунт участника.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if len(in.Password) < validation.MinPasswordLength {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("пароль должен быть не менее %d символов", validation.MinPasswordLength))
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	account := &models.Account{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(passHash),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperror.New(apperror.ErrCodeValidation, "имя пользователя уже занято")
		}
		return nil, err
	}

	tokenPair, err := s.tokenManager.GeneratePair(account)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Account: account, TokenPair: tokenPair}, nil
}

// Login проверяет учетные данные и выдаёт пару токенов.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	account, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	tokenPair, err := s.tokenManager.GeneratePair(account)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Account: account, TokenPair: tokenPair}, nil
}

// Refresh выдаёт новую пару токенов по refresh токену.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	tokenPair, err := s.tokenManager.GeneratePair(account)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Account: account, TokenPair: tokenPair}, nil
}
