package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWalletRepositoryTest(t *testing.T) (*GormWalletRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wallet_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Wallet{},
		&models.WalletTransaction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewWalletRepository(db), db
}

func TestWalletRepositoryListTransactions(t *testing.T) {
	repo, db := setupWalletRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	wallet := models.Wallet{
		PartnerID: 7,
		Balance:   models.NewMoneyFromDecimal(decimal.RequireFromString("500.00")),
		Currency:  constants.DefaultCurrency,
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}

	processedAt := now.Add(-time.Hour)
	methodID := uint(11)
	txns := []models.WalletTransaction{
		{
			WalletID:    wallet.ID,
			Type:        constants.TxnTypeWithdrawal,
			Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
			Status:      constants.TxnStatusPending,
			Reference:   "WD-REPO-001",
			RequestedAt: now.Add(-3 * time.Hour),
		},
		{
			WalletID:        wallet.ID,
			Type:            constants.TxnTypeWithdrawal,
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("250.00")),
			Status:          constants.TxnStatusCompleted,
			Reference:       "WD-REPO-002",
			PaymentMethodID: &methodID,
			RequestedAt:     now.Add(-2 * time.Hour),
			ProcessedAt:     &processedAt,
		},
		{
			WalletID:    wallet.ID,
			Type:        constants.TxnTypeWithdrawal,
			Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("75.00")),
			Status:      constants.TxnStatusFailed,
			Reference:   "WD-REPO-003",
			RequestedAt: now.Add(-time.Hour),
			ProcessedAt: &processedAt,
		},
	}
	if err := db.Create(&txns).Error; err != nil {
		t.Fatalf("create transactions failed: %v", err)
	}

	t.Run("default sort is requested_at desc", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID: wallet.ID,
			Type:     constants.TxnTypeWithdrawal,
			Page:     1,
			PageSize: 10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 3 {
			t.Fatalf("total want 3 got %d", total)
		}
		if rows[0].Reference != "WD-REPO-003" {
			t.Fatalf("expected newest first, got %s", rows[0].Reference)
		}
	})

	t.Run("sort by amount asc", func(t *testing.T) {
		rows, _, err := repo.ListTransactions(PayoutListFilter{
			WalletID:  wallet.ID,
			Page:      1,
			PageSize:  10,
			SortBy:    "amount",
			SortOrder: "asc",
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if rows[0].Reference != "WD-REPO-003" || rows[2].Reference != "WD-REPO-002" {
			t.Fatalf("unexpected amount ordering: %s .. %s", rows[0].Reference, rows[2].Reference)
		}
	})

	t.Run("unknown sort field falls back to requested_at", func(t *testing.T) {
		rows, _, err := repo.ListTransactions(PayoutListFilter{
			WalletID: wallet.ID,
			Page:     1,
			PageSize: 10,
			SortBy:   "reference; DROP TABLE wallets",
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if rows[0].Reference != "WD-REPO-003" {
			t.Fatalf("expected requested_at fallback, got %s", rows[0].Reference)
		}
	})

	t.Run("filter by status set", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID: wallet.ID,
			Statuses: []string{constants.TxnStatusCompleted, constants.TxnStatusFailed},
			Page:     1,
			PageSize: 10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Fatalf("want 2 rows got total=%d len=%d", total, len(rows))
		}
	})

	t.Run("filter by payment method", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID:        wallet.ID,
			PaymentMethodID: methodID,
			Page:            1,
			PageSize:        10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 1 || rows[0].Reference != "WD-REPO-002" {
			t.Fatalf("want only WD-REPO-002, got total=%d", total)
		}
	})

	t.Run("filter by request date range", func(t *testing.T) {
		start := now.Add(-150 * time.Minute)
		end := now.Add(-90 * time.Minute)
		rows, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID:  wallet.ID,
			StartDate: &start,
			EndDate:   &end,
			Page:      1,
			PageSize:  10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 1 || rows[0].Reference != "WD-REPO-002" {
			t.Fatalf("want only WD-REPO-002, got total=%d", total)
		}
	})

	t.Run("request date bounds are inclusive", func(t *testing.T) {
		start := now.Add(-3 * time.Hour)
		end := now.Add(-time.Hour)
		_, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID:  wallet.ID,
			StartDate: &start,
			EndDate:   &end,
			Page:      1,
			PageSize:  10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 3 {
			t.Fatalf("boundary rows should match, got total=%d", total)
		}
	})

	t.Run("filter by amount range", func(t *testing.T) {
		min := decimal.RequireFromString("75.00")
		max := decimal.RequireFromString("100.00")
		_, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID:  wallet.ID,
			MinAmount: &min,
			MaxAmount: &max,
			Page:      1,
			PageSize:  10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 2 {
			t.Fatalf("amount bounds are inclusive, want 2 got %d", total)
		}
	})

	t.Run("range filters can exclude everything", func(t *testing.T) {
		start := now.Add(24 * time.Hour)
		end := now.Add(48 * time.Hour)
		min := decimal.RequireFromString("1000.00")
		_, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID:        wallet.ID,
			PaymentMethodID: 9999,
			StartDate:       &start,
			EndDate:         &end,
			MinAmount:       &min,
			Page:            1,
			PageSize:        10,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 0 {
			t.Fatalf("want 0 rows got %d", total)
		}
	})

	t.Run("public sort aliases", func(t *testing.T) {
		rows, _, err := repo.ListTransactions(PayoutListFilter{
			WalletID:  wallet.ID,
			Page:      1,
			PageSize:  10,
			SortBy:    "date",
			SortOrder: "asc",
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if rows[0].Reference != "WD-REPO-001" {
			t.Fatalf("date asc should return oldest first, got %s", rows[0].Reference)
		}
	})

	t.Run("pagination slices results", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(PayoutListFilter{
			WalletID: wallet.ID,
			Page:     2,
			PageSize: 2,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 3 {
			t.Fatalf("total want 3 got %d", total)
		}
		if len(rows) != 1 {
			t.Fatalf("page 2 len want 1 got %d", len(rows))
		}
	})
}

func TestWalletRepositoryGetByPartnerID(t *testing.T) {
	repo, db := setupWalletRepositoryTest(t)

	wallet := models.Wallet{
		PartnerID: 42,
		Balance:   models.NewMoneyFromDecimal(decimal.Zero),
		Currency:  constants.DefaultCurrency,
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}

	got, err := repo.GetByPartnerID(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.ID != wallet.ID {
		t.Fatalf("unexpected wallet: %+v", got)
	}

	missing, err := repo.GetByPartnerID(999)
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown partner, got %+v", missing)
	}
}
