package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/dto"
	"github.com/ignatzorin/marketplace-backend/internal/http/handlers/common"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// ListingHandler предоставляет HTTP слой для объявлений.
type ListingHandler struct {
	listings *service.ListingService
}

// NewListingHandler создаёт хэндлер.
func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Create обрабатывает POST /api/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	sellerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.CreateListingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.listings.CreateListing(c.Request.Context(), sellerID, service.ListingInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		PriceWei:    req.PriceWei,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, listing)
}

// Update обрабатывает PUT /api/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.UpdateListingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.listings.ModifyListing(c.Request.Context(), callerID, c.Param("id"), service.ListingInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		PriceWei:    req.PriceWei,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, listing)
}

// Get обрабатывает GET /api/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listings.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, listing)
}

// List обрабатывает GET /api/listings — открытый каталог.
func (h *ListingHandler) List(c *gin.Context) {
	limit, offset := common.Pagination(c)

	listings, err := h.listings.ListAvailable(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"listings": listings})
}

// ListMine обрабатывает GET /api/listings/my.
func (h *ListingHandler) ListMine(c *gin.Context) {
	sellerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	listings, liveCount, err := h.listings.ListMyListings(c.Request.Context(), sellerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.ListingsResponse{
		Listings:  listings,
		LiveCount: liveCount,
	})
}
