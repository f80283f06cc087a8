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
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

// ListingRepository отвечает за каталог объявлений.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository создаёт новый экземпляр.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create сохраняет новое объявление.
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, seller_id, name, description, location, image_url, price_wei, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.SellerID, listing.Name, listing.Description,
		listing.Location, listing.ImageURL, listing.PriceWei, listing.Status).
		Scan(&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("listing repository: create %w", err)
	}
	return nil
}

// GetByID возвращает объявление по идентификатору.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	query := `
		SELECT id, seller_id, name, description, location, image_url, price_wei, status, order_id, created_at, updated_at
		FROM listings
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("listing repository: get by id %w", err)
	}
	return &listing, nil
}

// UpdateFields перезаписывает изменяемые поля объявления.
// id и seller_id неизменяемы с момента создания.
func (r *ListingRepository) UpdateFields(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET name = $2, description = $3, location = $4, image_url = $5, price_wei = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.Name, listing.Description, listing.Location,
		listing.ImageURL, listing.PriceWei).
		Scan(&listing.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListingNotFound
		}
		return fmt.Errorf("listing repository: update fields %w", err)
	}
	return nil
}

// ListBySeller возвращает все объявления продавца (индекс по продавцу).
func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	query := `
		SELECT id, seller_id, name, description, location, image_url, price_wei, status, order_id, created_at, updated_at
		FROM listings
		WHERE seller_id = $1
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &listings, query, sellerID); err != nil {
		return nil, fmt.Errorf("listing repository: list by seller %w", err)
	}
	return listings, nil
}

// CountLiveBySeller возвращает количество активных объявлений продавца.
func (r *ListingRepository) CountLiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM listings WHERE seller_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &count, query, sellerID, valueobject.ListingStatusAvailable); err != nil {
		return 0, fmt.Errorf("listing repository: count live by seller %w", err)
	}
	return count, nil
}

// ListAvailable возвращает открытый каталог доступных объявлений.
func (r *ListingRepository) ListAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	var listings []models.Listing
	query := `
		SELECT id, seller_id, name, description, location, image_url, price_wei, status, order_id, created_at, updated_at
		FROM listings
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &listings, query, valueobject.ListingStatusAvailable, limit, offset); err != nil {
		return nil, fmt.Errorf("listing repository: list available %w", err)
	}
	return listings, nil
}
