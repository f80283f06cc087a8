package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/dto"
	"github.com/ignatzorin/marketplace-backend/internal/http/handlers/common"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// LedgerHandler предоставляет HTTP слой для балансов и движений средств.
type LedgerHandler struct {
	ledger *service.LedgerService
}

// NewLedgerHandler создаёт хэндлер.
func NewLedgerHandler(ledger *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Deposit обрабатывает POST /api/ledger/deposit.
func (h *LedgerHandler) Deposit(c *gin.Context) {
	accountID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.DepositRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.ledger.Deposit(c.Request.Context(), accountID, req.AmountWei)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewBalanceResponse(balance))
}

// Balance обрабатывает GET /api/ledger/balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	accountID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	balance, err := h.ledger.BalanceOf(c.Request.Context(), accountID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewBalanceResponse(balance))
}

// BalanceOfAccount обрабатывает GET /api/ledger/balance/:accountId.
// Балансы публично читаемы, как и суммарный объём средств.
func (h *LedgerHandler) BalanceOfAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректный идентификатор аккаунта")
		return
	}

	balance, err := h.ledger.BalanceOf(c.Request.Context(), accountID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewBalanceResponse(balance))
}

// TotalHeld обрабатывает GET /api/ledger/total.
func (h *LedgerHandler) TotalHeld(c *gin.Context) {
	total, err := h.ledger.TotalHeld(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.TotalHeldResponse{TotalWei: total})
}

// Withdraw обрабатывает POST /api/ledger/withdrawals.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	accountID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.WithdrawalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	withdrawal, err := h.ledger.RequestWithdrawal(c.Request.Context(), accountID, req.AmountWei)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, withdrawal)
}

// ListWithdrawals обрабатывает GET /api/ledger/withdrawals.
func (h *LedgerHandler) ListWithdrawals(c *gin.Context) {
	accountID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	limit, offset := common.Pagination(c)
	withdrawals, err := h.ledger.ListWithdrawals(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"withdrawals": withdrawals})
}

// ListTransactions обрабатывает GET /api/ledger/transactions.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	accountID, err := common.CurrentAccountID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	limit, offset := common.Pagination(c)
	transactions, err := h.ledger.ListTransactions(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"transactions": transactions})
}
