package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/dto"
	"github.com/ignatzorin/marketplace-backend/internal/http/handlers/common"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// OrderHandler предоставляет HTTP слой для жизненного цикла заказа:
// покупка, одобрения и отмены с обеих сторон.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler создаёт хэндлер.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Buy обрабатывает POST /api/listings/:id/buy.
func (h *OrderHandler) Buy(c *gin.Context) {
	buyerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.BuyListingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.BuyItem(c.Request.Context(), buyerID, c.Param("id"), req.PaidWei)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, order)
}

// SellerApproval обрабатывает POST /api/orders/:id/seller-approval.
func (h *OrderHandler) SellerApproval(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.ApprovalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.SellerApprove(c.Request.Context(), callerID, c.Param("id"), *req.Approve)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// BuyerApproval обрабатывает POST /api/orders/:id/buyer-approval.
func (h *OrderHandler) BuyerApproval(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.ApprovalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.BuyerApprove(c.Request.Context(), callerID, c.Param("id"), *req.Approve)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// BuyerCancel обрабатывает POST /api/orders/:id/buyer-cancel.
func (h *OrderHandler) BuyerCancel(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	order, err := h.orders.BuyerCancel(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// SellerCancel обрабатывает POST /api/orders/:id/seller-cancel.
func (h *OrderHandler) SellerCancel(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	order, err := h.orders.SellerCancel(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// Get обрабатывает GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// ListMine обрабатывает GET /api/orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	callerID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	orders, err := h.orders.ListMyOrders(c.Request.Context(), callerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"orders": orders})
}
