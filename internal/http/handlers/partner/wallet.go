package partner

import (
	"strconv"
	"strings"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/http/response"
	"github.com/adnex-platform/partner-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetMyWallet returns the partner wallet with the withdrawable amount.
func (h *Handler) GetMyWallet(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	wallet, pending, available, err := h.PayoutService.WalletOverview(pid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load wallet", err)
		return
	}
	response.Success(c, gin.H{
		"id":                wallet.ID,
		"balance":           wallet.Balance,
		"pending_earnings":  models.NewMoneyFromDecimal(pending),
		"available_balance": models.NewMoneyFromDecimal(available),
		"currency":          wallet.Currency,
		"updated_at":        wallet.UpdatedAt,
	})
}

// ListMyEarnings pages the partner's earnings.
func (h *Handler) ListMyEarnings(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	switch status {
	case "", constants.EarningStatusPending, constants.EarningStatusProcessed:
	default:
		respondError(c, response.CodeBadRequest, "invalid earning status filter", nil)
		return
	}

	earnings, total, err := h.PayoutService.ListEarnings(pid, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load earnings", err)
		return
	}
	response.SuccessWithPage(c, earnings, response.BuildPagination(page, pageSize, total))
}

// ListMyPaymentMethods returns the partner's payout destinations with
// sensitive details masked.
func (h *Handler) ListMyPaymentMethods(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	methods, err := h.PayoutService.ListPaymentMethods(pid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load payment methods", err)
		return
	}
	response.Success(c, methods)
}
