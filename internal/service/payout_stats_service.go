package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/adnex-platform/partner-api/internal/cache"
	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"

	"github.com/shopspring/decimal"
)

const (
	payoutStatsCacheTTL = 45 * time.Second
	payoutTrendMonths   = 6
)

// PayoutStats aggregates a partner's withdrawal history.
type PayoutStats struct {
	TotalCount         int64               `json:"total_count"`
	TotalAmount        models.Money        `json:"total_amount"`
	TotalPaidOut       models.Money        `json:"total_paid_out"`
	CompletedCount     int64               `json:"completed_count"`
	InProgressAmount   models.Money        `json:"in_progress_amount"`
	InProgressCount    int64               `json:"in_progress_count"`
	CurrentMonth       models.Money        `json:"current_month"`
	CurrentMonthCount  int64               `json:"current_month_count"`
	PreviousMonth      models.Money        `json:"previous_month"`
	PreviousMonthCount int64               `json:"previous_month_count"`
	YearToDate         models.Money        `json:"year_to_date"`
	YearToDateCount    int64               `json:"year_to_date_count"`
	AvgProcessingDays  int                 `json:"avg_processing_days"`
	MonthlyTrend       []PayoutMonthlyStat `json:"monthly_trend"`
}

// PayoutMonthlyStat is one month of payout volume across every status,
// with per-outcome counts alongside the total.
type PayoutMonthlyStat struct {
	Month          string       `json:"month"`
	Amount         models.Money `json:"amount"`
	Count          int64        `json:"count"`
	CompletedCount int64        `json:"completed_count"`
	PendingCount   int64        `json:"pending_count"`
	FailedCount    int64        `json:"failed_count"`
}

// GetPayoutStats computes the partner's payout statistics. Results are
// cached briefly since the numbers back a dashboard.
func (s *PayoutService) GetPayoutStats(ctx context.Context, partnerID uint) (*PayoutStats, error) {
	if partnerID == 0 {
		return nil, ErrPartnerNotFound
	}

	cacheKey := fmt.Sprintf("payout:stats:%d", partnerID)
	var cached PayoutStats
	if hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
		return &cached, nil
	}

	wallet, err := s.GetWallet(partnerID)
	if err != nil {
		return nil, err
	}
	txns, err := s.walletRepo.ListAllTransactionsByWallet(wallet.ID, constants.TxnTypeWithdrawal)
	if err != nil {
		return nil, err
	}

	stats := buildPayoutStats(txns, time.Now())
	_ = cache.SetJSON(ctx, cacheKey, stats, payoutStatsCacheTTL)
	return stats, nil
}

func buildPayoutStats(txns []models.WalletTransaction, now time.Time) *PayoutStats {
	totalPaid := decimal.Zero
	inProgress := decimal.Zero
	currentMonth := decimal.Zero
	previousMonth := decimal.Zero
	yearToDate := decimal.Zero
	totalAmount := decimal.Zero
	var totalCount, completedCount, inProgressCount int64
	var currentMonthCount, previousMonthCount, yearToDateCount int64

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	type bucket struct {
		amount    decimal.Decimal
		count     int64
		completed int64
		pending   int64
		failed    int64
	}
	trendStart := monthStart.AddDate(0, -(payoutTrendMonths - 1), 0)
	trend := make(map[string]*bucket, payoutTrendMonths)
	for i := 0; i < payoutTrendMonths; i++ {
		month := trendStart.AddDate(0, i, 0)
		trend[month.Format("2006-01")] = &bucket{amount: decimal.Zero}
	}

	processingDaysSum := 0
	processingSamples := 0

	for _, txn := range txns {
		amount := txn.Amount.Decimal
		totalAmount = totalAmount.Add(amount)
		totalCount++

		// Monthly buckets cover every outcome so abandoned and failed
		// requests stay visible in the trend.
		bucketAt := txn.RequestedAt
		if txn.ProcessedAt != nil {
			bucketAt = *txn.ProcessedAt
		}
		if b, ok := trend[bucketAt.Format("2006-01")]; ok {
			b.amount = b.amount.Add(amount)
			b.count++
			switch txn.Status {
			case constants.TxnStatusCompleted:
				b.completed++
			case constants.TxnStatusPending, constants.TxnStatusProcessing:
				b.pending++
			case constants.TxnStatusFailed, constants.TxnStatusCancelled:
				b.failed++
			}
		}

		switch txn.Status {
		case constants.TxnStatusCompleted:
			totalPaid = totalPaid.Add(amount)
			completedCount++
			if !bucketAt.Before(monthStart) {
				currentMonth = currentMonth.Add(amount)
				currentMonthCount++
			} else if !bucketAt.Before(prevMonthStart) {
				previousMonth = previousMonth.Add(amount)
				previousMonthCount++
			}
			if !bucketAt.Before(yearStart) {
				yearToDate = yearToDate.Add(amount)
				yearToDateCount++
			}
			if txn.ProcessedAt != nil {
				processingDaysSum += processingDays(txn.RequestedAt, *txn.ProcessedAt)
				processingSamples++
			}
		case constants.TxnStatusPending, constants.TxnStatusProcessing:
			inProgress = inProgress.Add(amount)
			inProgressCount++
		}
	}

	avgDays := 0
	if processingSamples > 0 {
		avgDays = int(math.Round(float64(processingDaysSum) / float64(processingSamples)))
	}

	monthly := make([]PayoutMonthlyStat, 0, payoutTrendMonths)
	for i := 0; i < payoutTrendMonths; i++ {
		month := trendStart.AddDate(0, i, 0)
		key := month.Format("2006-01")
		b := trend[key]
		monthly = append(monthly, PayoutMonthlyStat{
			Month:          key,
			Amount:         models.NewMoneyFromDecimal(b.amount),
			Count:          b.count,
			CompletedCount: b.completed,
			PendingCount:   b.pending,
			FailedCount:    b.failed,
		})
	}

	return &PayoutStats{
		TotalCount:         totalCount,
		TotalAmount:        models.NewMoneyFromDecimal(totalAmount),
		TotalPaidOut:       models.NewMoneyFromDecimal(totalPaid),
		CompletedCount:     completedCount,
		InProgressAmount:   models.NewMoneyFromDecimal(inProgress),
		InProgressCount:    inProgressCount,
		CurrentMonth:       models.NewMoneyFromDecimal(currentMonth),
		CurrentMonthCount:  currentMonthCount,
		PreviousMonth:      models.NewMoneyFromDecimal(previousMonth),
		PreviousMonthCount: previousMonthCount,
		YearToDate:         models.NewMoneyFromDecimal(yearToDate),
		YearToDateCount:    yearToDateCount,
		AvgProcessingDays:  avgDays,
		MonthlyTrend:       monthly,
	}
}

// processingDays counts elapsed calendar days, rounding any partial day up.
func processingDays(requested, processed time.Time) int {
	elapsed := processed.Sub(requested)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}
