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
	"github.com/ignatzorin/marketplace-backend/internal/validation"
)

// ListingRepository описывает взаимодействие сервиса с каталогом объявлений.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	UpdateFields(ctx context.Context, listing *models.Listing) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error)
	CountLiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error)
	ListAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error)
}

// ListingService реализует создание и изменение объявлений.
type ListingService struct {
	repo     ListingRepository
	notifier events.Notifier
}

// ListingInput содержит поля объявления от вызывающей стороны.
type ListingInput struct {
	Name        string
	Description string
	Location    string
	ImageURL    string
	PriceWei    int64
}

// NewListingService создаёт сервис объявлений.
func NewListingService(repo ListingRepository, notifier events.Notifier) *ListingService {
	return &ListingService{repo: repo, notifier: notifier}
}

// CreateListing валидирует поля, выдаёт свежий идентификатор и сохраняет
// объявление со статусом available.
func (s *ListingService) CreateListing(ctx context.Context, sellerID uuid.UUID, in ListingInput) (*models.Listing, error) {
	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	listing := &models.Listing{
		ID:          ident.NewListingID(),
		SellerID:    sellerID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		PriceWei:    in.PriceWei,
		Status:      valueobject.ListingStatusAvailable,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.emit(sellerID, events.KindListingCreated, events.ListingPayload{
		ListingID: listing.ID,
		SellerID:  sellerID,
	})

	return listing, nil
}

// ModifyListing перезаписывает изменяемые поля объявления.
// Разрешено только продавцу и только пока объявление не продано.
func (s *ListingService) ModifyListing(ctx context.Context, callerID uuid.UUID, listingID string, in ListingInput) (*models.Listing, error) {
	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}

	if listing.SellerID != callerID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "изменять объявление может только продавец")
	}
	if listing.Status != valueobject.ListingStatusAvailable {
		return nil, apperror.ErrListingAlreadySold
	}

	listing.Name = in.Name
	listing.Description = in.Description
	listing.Location = in.Location
	listing.ImageURL = in.ImageURL
	listing.PriceWei = in.PriceWei

	if err := s.repo.UpdateFields(ctx, listing); err != nil {
		return nil, err
	}

	s.emit(callerID, events.KindListingModified, events.ListingPayload{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
	})

	return listing, nil
}

// GetListing возвращает объявление по идентификатору.
func (s *ListingService) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

// ListMyListings возвращает объявления продавца и количество активных.
func (s *ListingService) ListMyListings(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, int, error) {
	listings, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, 0, err
	}
	liveCount, err := s.repo.CountLiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, 0, err
	}
	return listings, liveCount, nil
}

// ListAvailable возвращает открытый каталог.
func (s *ListingService) ListAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAvailable(ctx, limit, offset)
}

func (s *ListingService) emit(accountID uuid.UUID, kind string, payload any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(accountID, kind, payload); err != nil && logger.Log != nil {
		logger.Log.WithError(err).WithField("kind", kind).Warn("не удалось доставить уведомление")
	}
}

func validateListingInput(in ListingInput) error {
	if err := validation.ValidateListingName(in.Name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateListingDescription(in.Description); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateListingLocation(in.Location); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateImageURL(in.ImageURL); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePriceWei(in.PriceWei); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}
