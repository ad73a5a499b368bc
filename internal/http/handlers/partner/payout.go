package partner

import (
	"strconv"
	"strings"
	"time"

	"github.com/adnex-platform/partner-api/internal/http/response"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreatePayoutRequest is the withdrawal request payload.
type CreatePayoutRequest struct {
	Amount          string `json:"amount" binding:"required"`
	PaymentMethodID uint   `json:"payment_method_id" binding:"required"`
	EarningID       *uint  `json:"earning_id"`
	Description     string `json:"description"`
}

// CreatePayout submits a withdrawal request.
func (h *Handler) CreatePayout(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "amount and payment_method_id are required", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid amount", err)
		return
	}

	txn, err := h.PayoutService.CreatePayout(pid, service.CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(amount),
		PaymentMethodID: req.PaymentMethodID,
		EarningID:       req.EarningID,
		Description:     strings.TrimSpace(req.Description),
	})
	if err != nil {
		respondWithMappedError(c, err, payoutCreateErrorRules, response.CodeInternal, "failed to create payout")
		return
	}

	detail, err := h.PayoutService.GetPayout(pid, txn.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load payout", err)
		return
	}
	response.Success(c, detail)
}

// CancelPayout cancels a pending withdrawal.
func (h *Handler) CancelPayout(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	payoutID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	if _, err := h.PayoutService.CancelPayout(pid, payoutID); err != nil {
		respondWithMappedError(c, err, payoutCancelErrorRules, response.CodeInternal, "failed to cancel payout")
		return
	}

	detail, err := h.PayoutService.GetPayout(pid, payoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load payout", err)
		return
	}
	response.SuccessWithMsg(c, "payout cancelled", detail)
}

// GetPayout returns one payout with masked destination details.
func (h *Handler) GetPayout(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	payoutID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	detail, err := h.PayoutService.GetPayout(pid, payoutID)
	if err != nil {
		respondWithMappedError(c, err, payoutReadErrorRules, response.CodeInternal, "failed to load payout")
		return
	}
	response.Success(c, detail)
}

// ListPayouts pages the partner's withdrawal history. Date bounds apply
// to the request date and all range filters are inclusive.
func (h *Handler) ListPayouts(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", c.DefaultQuery("page_size", "20")))
	page, pageSize = normalizePagination(page, pageSize)

	input := service.ListPayoutsInput{
		Status:    strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    strings.TrimSpace(firstQuery(c, "sortBy", "sort_by")),
		SortOrder: strings.TrimSpace(firstQuery(c, "sortOrder", "sort_order")),
	}

	if raw := strings.TrimSpace(c.Query("paymentMethod")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			respondError(c, response.CodeBadRequest, "invalid payment method filter", err)
			return
		}
		input.PaymentMethodID = uint(id)
	}
	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid start date, expected YYYY-MM-DD", err)
			return
		}
		input.StartDate = &start
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid end date, expected YYYY-MM-DD", err)
			return
		}
		// The bound is inclusive, so cover the whole day.
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		input.EndDate = &end
	}
	if raw := strings.TrimSpace(c.Query("minAmount")); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid minimum amount filter", err)
			return
		}
		input.MinAmount = &min
	}
	if raw := strings.TrimSpace(c.Query("maxAmount")); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid maximum amount filter", err)
			return
		}
		input.MaxAmount = &max
	}

	payouts, total, err := h.PayoutService.ListPayouts(pid, input)
	if err != nil {
		respondWithMappedError(c, err, payoutReadErrorRules, response.CodeInternal, "failed to load payouts")
		return
	}
	response.SuccessWithPage(c, payouts, response.BuildPagination(page, pageSize, total))
}

// GetPayoutStats returns the partner's payout dashboard numbers.
func (h *Handler) GetPayoutStats(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	stats, err := h.PayoutService.GetPayoutStats(c.Request.Context(), pid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load payout stats", err)
		return
	}
	response.Success(c, stats)
}

// GetPayoutReceipt renders the receipt of a completed payout.
func (h *Handler) GetPayoutReceipt(c *gin.Context) {
	pid, ok := getPartnerID(c)
	if !ok {
		return
	}
	raw := strings.TrimSpace(c.Query("id"))
	payoutID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || payoutID == 0 {
		respondError(c, response.CodeBadRequest, "invalid payout id", err)
		return
	}

	receipt, err := h.ReceiptService.GenerateReceipt(pid, uint(payoutID))
	if err != nil {
		respondWithMappedError(c, err, receiptErrorRules, response.CodeInternal, "failed to generate receipt")
		return
	}
	response.Success(c, receipt)
}

// firstQuery returns the first non-empty value among the named params.
func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.Query(name); v != "" {
			return v
		}
	}
	return ""
}

func parsePayoutID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid payout id", err)
		return 0, false
	}
	return uint(id), true
}
