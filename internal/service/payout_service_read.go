package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"
)

// MaskedPaymentMethod is a payout destination safe to expose over the API.
type MaskedPaymentMethod struct {
	ID      uint        `json:"id"`
	Type    string      `json:"type"`
	Label   string      `json:"label"`
	Details models.JSON `json:"details"`
}

// PayoutSummary is a single row of the payout history listing.
type PayoutSummary struct {
	ID          uint         `json:"id"`
	Reference   string       `json:"reference"`
	Amount      models.Money `json:"amount"`
	Fee         models.Money `json:"fee"`
	NetAmount   models.Money `json:"net_amount"`
	Status      string       `json:"status"`
	MethodType  string       `json:"method_type,omitempty"`
	Description string       `json:"description"`
	EarningID   *uint        `json:"earning_id,omitempty"`
	RequestedAt time.Time    `json:"requested_at"`
	ProcessedAt *time.Time   `json:"processed_at"`
}

// PayoutDetail is the full view of a single payout.
type PayoutDetail struct {
	PayoutSummary
	PaymentMethod    *MaskedPaymentMethod `json:"payment_method"`
	EstimatedArrival *time.Time           `json:"estimated_arrival"`
	RejectionReason  string               `json:"rejection_reason,omitempty"`
}

// ListPayoutsInput is the query surface of the payout history listing.
// Date bounds apply to the request date; all range bounds are inclusive.
type ListPayoutsInput struct {
	Status          string
	PaymentMethodID uint
	StartDate       *time.Time
	EndDate         *time.Time
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}

// ListPayouts pages a partner's withdrawal history. The optional status
// filter takes the partner facing status names.
func (s *PayoutService) ListPayouts(partnerID uint, input ListPayoutsInput) ([]PayoutSummary, int64, error) {
	wallet, err := s.GetWallet(partnerID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.PayoutListFilter{
		WalletID:        wallet.ID,
		Type:            constants.TxnTypeWithdrawal,
		PaymentMethodID: input.PaymentMethodID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MinAmount:       input.MinAmount,
		MaxAmount:       input.MaxAmount,
		Page:            input.Page,
		PageSize:        input.PageSize,
		SortBy:          input.SortBy,
		SortOrder:       input.SortOrder,
	}
	if input.Status != "" {
		statuses, ok := InternalPayoutStatuses(input.Status)
		if !ok {
			return nil, 0, ErrPayoutStatusInvalid
		}
		filter.Statuses = statuses
	}

	txns, total, err := s.walletRepo.ListTransactions(filter)
	if err != nil {
		return nil, 0, err
	}

	methodTypes, err := s.methodTypesFor(txns)
	if err != nil {
		return nil, 0, err
	}
	earningIDs, err := s.earningIDsFor(txns)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]PayoutSummary, 0, len(txns))
	for _, txn := range txns {
		summary := buildPayoutSummary(&txn)
		if txn.PaymentMethodID != nil {
			summary.MethodType = methodTypes[*txn.PaymentMethodID]
		}
		if earningID, ok := earningIDs[txn.ID]; ok {
			id := earningID
			summary.EarningID = &id
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

// methodTypesFor batch-resolves the payment method types behind a page of
// transactions.
func (s *PayoutService) methodTypesFor(txns []models.WalletTransaction) (map[uint]string, error) {
	ids := make([]uint, 0, len(txns))
	seen := make(map[uint]bool, len(txns))
	for _, txn := range txns {
		if txn.PaymentMethodID == nil || seen[*txn.PaymentMethodID] {
			continue
		}
		seen[*txn.PaymentMethodID] = true
		ids = append(ids, *txn.PaymentMethodID)
	}
	methods, err := s.methodRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	types := make(map[uint]string, len(methods))
	for _, method := range methods {
		types[method.ID] = method.Type
	}
	return types, nil
}

// earningIDsFor batch-resolves the earnings consumed by a page of
// transactions, keyed by transaction id.
func (s *PayoutService) earningIDsFor(txns []models.WalletTransaction) (map[uint]uint, error) {
	ids := make([]uint, 0, len(txns))
	for _, txn := range txns {
		ids = append(ids, txn.ID)
	}
	earnings, err := s.earningRepo.ListByTransactionIDs(ids)
	if err != nil {
		return nil, err
	}
	linked := make(map[uint]uint, len(earnings))
	for _, earning := range earnings {
		if earning.TransactionID != nil {
			linked[*earning.TransactionID] = earning.ID
		}
	}
	return linked, nil
}

// GetPayout returns the full view of one payout owned by the partner.
func (s *PayoutService) GetPayout(partnerID uint, payoutID uint) (*PayoutDetail, error) {
	if partnerID == 0 || payoutID == 0 {
		return nil, ErrPayoutNotFound
	}
	wallet, err := s.GetWallet(partnerID)
	if err != nil {
		return nil, err
	}
	txn, err := s.walletRepo.GetTransactionByID(payoutID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.WalletID != wallet.ID || txn.Type != constants.TxnTypeWithdrawal {
		return nil, ErrPayoutNotFound
	}

	detail := &PayoutDetail{
		PayoutSummary: buildPayoutSummary(txn),
	}

	if txn.PaymentMethodID != nil {
		method, err := s.methodRepo.GetByID(*txn.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if method != nil && method.WalletID == wallet.ID {
			masked := maskPaymentMethod(method)
			detail.PaymentMethod = &masked
			detail.MethodType = method.Type
		}
	}

	earning, err := s.earningRepo.GetByTransactionID(txn.ID)
	if err != nil {
		return nil, err
	}
	if earning != nil {
		id := earning.ID
		detail.EarningID = &id
	}

	days, err := s.settingSvc.GetProcessingDays()
	if err != nil {
		return nil, err
	}
	switch txn.Status {
	case constants.TxnStatusPending:
		eta := addBusinessDays(time.Now(), days)
		detail.EstimatedArrival = &eta
	case constants.TxnStatusProcessing:
		if txn.ProcessedAt != nil {
			eta := addBusinessDays(*txn.ProcessedAt, days)
			detail.EstimatedArrival = &eta
		}
	case constants.TxnStatusFailed:
		reason := strings.TrimSpace(txn.Description)
		if reason == "" {
			reason = fmt.Sprintf(
				"Your payout could not be processed. Please contact %s for details.",
				s.settingSvc.SupportEmail())
		}
		detail.RejectionReason = reason
	}
	return detail, nil
}

// ListEarnings pages a partner's earnings.
func (s *PayoutService) ListEarnings(partnerID uint, status string, page, pageSize int) ([]models.PartnerEarning, int64, error) {
	if partnerID == 0 {
		return nil, 0, ErrPartnerNotFound
	}
	return s.earningRepo.List(repository.EarningListFilter{
		PartnerID: partnerID,
		Status:    status,
		Page:      page,
		PageSize:  pageSize,
	})
}

// ListPaymentMethods returns the partner's payout destinations with
// sensitive details masked.
func (s *PayoutService) ListPaymentMethods(partnerID uint) ([]MaskedPaymentMethod, error) {
	wallet, err := s.GetWallet(partnerID)
	if err != nil {
		return nil, err
	}
	methods, err := s.methodRepo.ListByWallet(wallet.ID)
	if err != nil {
		return nil, err
	}
	masked := make([]MaskedPaymentMethod, 0, len(methods))
	for _, method := range methods {
		masked = append(masked, maskPaymentMethod(&method))
	}
	return masked, nil
}

func buildPayoutSummary(txn *models.WalletTransaction) PayoutSummary {
	net := txn.Amount.Decimal.Sub(txn.Fee.Decimal).Round(2)
	return PayoutSummary{
		ID:          txn.ID,
		Reference:   txn.Reference,
		Amount:      txn.Amount,
		Fee:         txn.Fee,
		NetAmount:   models.NewMoneyFromDecimal(net),
		Status:      MapPayoutStatus(txn.Status),
		Description: txn.Description,
		RequestedAt: txn.RequestedAt,
		ProcessedAt: txn.ProcessedAt,
	}
}

func maskPaymentMethod(method *models.PaymentMethod) MaskedPaymentMethod {
	return MaskedPaymentMethod{
		ID:      method.ID,
		Type:    method.Type,
		Label:   method.Label,
		Details: MaskSensitiveData(method.Details),
	}
}

// addBusinessDays advances a timestamp by the given number of weekdays.
func addBusinessDays(from time.Time, days int) time.Time {
	result := from
	for days > 0 {
		result = result.AddDate(0, 0, 1)
		if wd := result.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days--
	}
	return result
}
