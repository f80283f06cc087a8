package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLedgerHandler_Balance_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &LedgerHandler{ledger: nil}
	r.GET("/ledger/balance", handler.Balance)

	req, _ := http.NewRequest("GET", "/ledger/balance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedgerHandler_Deposit_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &LedgerHandler{ledger: nil}
	r.POST("/ledger/deposit", handler.Deposit)

	req, _ := http.NewRequest("POST", "/ledger/deposit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedgerHandler_Withdraw_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &LedgerHandler{ledger: nil}
	r.POST("/ledger/withdrawals", handler.Withdraw)

	req, _ := http.NewRequest("POST", "/ledger/withdrawals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedgerHandler_ListTransactions_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &LedgerHandler{ledger: nil}
	r.GET("/ledger/transactions", handler.ListTransactions)

	req, _ := http.NewRequest("GET", "/ledger/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
