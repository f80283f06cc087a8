package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/marketplace-backend/internal/http/middleware"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/ident"
)

func TestOrderHandler_Buy_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.POST("/listings/:id/buy", handler.Buy)

	req, _ := http.NewRequest("POST", "/listings/"+ident.NewListingID()+"/buy", strings.NewReader(`{"paid_wei":100}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_SellerApproval_InvalidOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.POST("/orders/:id/seller-approval", middleware.OrderIDValidator("id"), handler.SellerApproval)

	req, _ := http.NewRequest("POST", "/orders/not-an-order-id/seller-approval", strings.NewReader(`{"approve":true}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_SellerApproval_RejectsListingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.POST("/orders/:id/seller-approval", middleware.OrderIDValidator("id"), handler.SellerApproval)

	// Идентификатор объявления не проходит как идентификатор заказа.
	req, _ := http.NewRequest("POST", "/orders/"+ident.NewListingID()+"/seller-approval", strings.NewReader(`{"approve":true}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_BuyerCancel_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.POST("/orders/:id/buyer-cancel", middleware.OrderIDValidator("id"), handler.BuyerCancel)

	req, _ := http.NewRequest("POST", "/orders/"+ident.NewOrderID()+"/buyer-cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_ListMine_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.GET("/orders", handler.ListMine)

	req, _ := http.NewRequest("GET", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
