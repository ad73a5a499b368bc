package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPayoutTest(t *testing.T) (*PayoutService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payout_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Partner{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.PartnerEarning{},
		&models.PaymentMethod{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	svc := NewPayoutService(
		repository.NewWalletRepository(db),
		repository.NewEarningRepository(db),
		repository.NewPaymentMethodRepository(db),
		repository.NewPartnerRepository(db),
		settingSvc,
	)
	return svc, db
}

func seedPartnerWallet(t *testing.T, db *gorm.DB, balance string) (*models.Partner, *models.Wallet, *models.PaymentMethod) {
	t.Helper()
	now := time.Now()
	partner := models.Partner{
		UserID:      1,
		CompanyName: "Acme Media",
		ContactName: "Jordan",
		Email:       "payouts@acme.example.com",
		Status:      constants.PartnerStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	wallet := models.Wallet{
		PartnerID: partner.ID,
		Balance:   models.NewMoneyFromDecimal(decimal.RequireFromString(balance)),
		Currency:  constants.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}
	method := models.PaymentMethod{
		WalletID: wallet.ID,
		Type:     constants.PaymentMethodBankTransfer,
		Label:    "Company account",
		Details: models.JSON{
			"accountNumber": "123456789012",
			"routingNumber": "021000021",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&method).Error; err != nil {
		t.Fatalf("create payment method failed: %v", err)
	}
	return &partner, &wallet, &method
}

func TestCreatePayoutDebitsWallet(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, wallet, method := seedPartnerWallet(t, db, "500.00")

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("200.00")),
		PaymentMethodID: method.ID,
		Description:     "May commission",
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	if txn.Status != constants.TxnStatusPending {
		t.Fatalf("status want PENDING got %s", txn.Status)
	}
	if !strings.HasPrefix(txn.Reference, "WD-") {
		t.Fatalf("unexpected reference %s", txn.Reference)
	}
	if txn.ProcessedAt != nil {
		t.Fatalf("pending payout must not have processed_at")
	}

	var reloaded models.Wallet
	if err := db.First(&reloaded, wallet.ID).Error; err != nil {
		t.Fatalf("reload wallet failed: %v", err)
	}
	if !reloaded.Balance.Decimal.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("balance want 300.00 got %s", reloaded.Balance.Decimal)
	}
}

func TestCreatePayoutValidation(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")

	t.Run("non positive amount", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.Zero),
			PaymentMethodID: method.ID,
		})
		if !errors.Is(err, ErrPayoutInvalidAmount) {
			t.Fatalf("want ErrPayoutInvalidAmount got %v", err)
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount: models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
		})
		if !errors.Is(err, ErrPayoutPaymentMethodRequired) {
			t.Fatalf("want ErrPayoutPaymentMethodRequired got %v", err)
		}
	})

	t.Run("foreign payment method", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
			PaymentMethodID: method.ID + 999,
		})
		if !errors.Is(err, ErrPayoutPaymentMethodInvalid) {
			t.Fatalf("want ErrPayoutPaymentMethodInvalid got %v", err)
		}
	})

	t.Run("insufficient balance", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("10000.00")),
			PaymentMethodID: method.ID,
		})
		if !errors.Is(err, ErrPayoutInsufficientBalance) {
			t.Fatalf("want ErrPayoutInsufficientBalance got %v", err)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
			PaymentMethodID: method.ID,
		})
		if !errors.Is(err, ErrPayoutBelowMinimum) {
			t.Fatalf("want ErrPayoutBelowMinimum got %v", err)
		}
		if !strings.Contains(err.Error(), "50.00") {
			t.Fatalf("error should carry the minimum, got %q", err.Error())
		}
	})
}

func TestCreatePayoutPendingEarningsCountTowardAvailability(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, wallet, method := seedPartnerWallet(t, db, "0.00")
	now := time.Now()

	earning := models.PartnerEarning{
		PartnerID:   partner.ID,
		Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("300.00")),
		PeriodStart: now.AddDate(0, -1, 0),
		PeriodEnd:   now,
		Status:      constants.EarningStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&earning).Error; err != nil {
		t.Fatalf("create earning failed: %v", err)
	}

	available, err := svc.AvailableBalance(partner.ID)
	if err != nil {
		t.Fatalf("available balance failed: %v", err)
	}
	if !available.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("available want 300.00 got %s", available)
	}

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("300.00")),
		PaymentMethodID: method.ID,
		EarningID:       &earning.ID,
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	// The zero wallet balance cannot cover the request, so it stays at zero
	// until the earning settles.
	var reloadedWallet models.Wallet
	if err := db.First(&reloadedWallet, wallet.ID).Error; err != nil {
		t.Fatalf("reload wallet failed: %v", err)
	}
	if !reloadedWallet.Balance.Decimal.IsZero() {
		t.Fatalf("wallet balance should stay zero, got %s", reloadedWallet.Balance.Decimal)
	}

	var reloadedEarning models.PartnerEarning
	if err := db.First(&reloadedEarning, earning.ID).Error; err != nil {
		t.Fatalf("reload earning failed: %v", err)
	}
	if reloadedEarning.Status != constants.EarningStatusProcessed {
		t.Fatalf("earning status want PROCESSED got %s", reloadedEarning.Status)
	}
	if reloadedEarning.TransactionID == nil || *reloadedEarning.TransactionID != txn.ID {
		t.Fatalf("earning should link to payout %d, got %v", txn.ID, reloadedEarning.TransactionID)
	}
}

func TestCreatePayoutEarningMustMatch(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")
	now := time.Now()

	earning := models.PartnerEarning{
		PartnerID:   partner.ID,
		Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("120.00")),
		PeriodStart: now.AddDate(0, -1, 0),
		PeriodEnd:   now,
		Status:      constants.EarningStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&earning).Error; err != nil {
		t.Fatalf("create earning failed: %v", err)
	}

	t.Run("amount mismatch", func(t *testing.T) {
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
			PaymentMethodID: method.ID,
			EarningID:       &earning.ID,
		})
		if !errors.Is(err, ErrPayoutEarningInvalid) {
			t.Fatalf("want ErrPayoutEarningInvalid got %v", err)
		}
	})

	t.Run("already processed", func(t *testing.T) {
		if err := db.Model(&models.PartnerEarning{}).Where("id = ?", earning.ID).
			Update("status", constants.EarningStatusProcessed).Error; err != nil {
			t.Fatalf("mark earning processed failed: %v", err)
		}
		_, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("120.00")),
			PaymentMethodID: method.ID,
			EarningID:       &earning.ID,
		})
		if !errors.Is(err, ErrPayoutEarningInvalid) {
			t.Fatalf("want ErrPayoutEarningInvalid got %v", err)
		}
	})
}

func TestCancelPayout(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, wallet, method := seedPartnerWallet(t, db, "500.00")

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("200.00")),
		PaymentMethodID: method.ID,
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	cancelled, err := svc.CancelPayout(partner.ID, txn.ID)
	if err != nil {
		t.Fatalf("cancel payout failed: %v", err)
	}
	if cancelled.Status != constants.TxnStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", cancelled.Status)
	}
	if cancelled.ProcessedAt == nil {
		t.Fatalf("cancelled payout must record processed_at")
	}

	var reloaded models.Wallet
	if err := db.First(&reloaded, wallet.ID).Error; err != nil {
		t.Fatalf("reload wallet failed: %v", err)
	}
	if !reloaded.Balance.Decimal.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("balance should be restored to 500.00, got %s", reloaded.Balance.Decimal)
	}

	t.Run("cancel twice", func(t *testing.T) {
		_, err := svc.CancelPayout(partner.ID, txn.ID)
		if !errors.Is(err, ErrPayoutNotCancellable) {
			t.Fatalf("want ErrPayoutNotCancellable got %v", err)
		}
	})

	t.Run("unknown payout", func(t *testing.T) {
		_, err := svc.CancelPayout(partner.ID, txn.ID+999)
		if !errors.Is(err, ErrPayoutNotFound) {
			t.Fatalf("want ErrPayoutNotFound got %v", err)
		}
	})
}

func TestCancelPayoutRevertsEarning(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")
	now := time.Now()

	earning := models.PartnerEarning{
		PartnerID:   partner.ID,
		Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		PeriodStart: now.AddDate(0, -1, 0),
		PeriodEnd:   now,
		Status:      constants.EarningStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&earning).Error; err != nil {
		t.Fatalf("create earning failed: %v", err)
	}

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		PaymentMethodID: method.ID,
		EarningID:       &earning.ID,
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	if _, err := svc.CancelPayout(partner.ID, txn.ID); err != nil {
		t.Fatalf("cancel payout failed: %v", err)
	}

	var reloaded models.PartnerEarning
	if err := db.First(&reloaded, earning.ID).Error; err != nil {
		t.Fatalf("reload earning failed: %v", err)
	}
	if reloaded.Status != constants.EarningStatusPending {
		t.Fatalf("earning status want PENDING got %s", reloaded.Status)
	}
	if reloaded.TransactionID != nil {
		t.Fatalf("earning link should be cleared, got %v", *reloaded.TransactionID)
	}
}

func TestCreatePayoutDescriptionNotesEarning(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")
	now := time.Now()

	earning := models.PartnerEarning{
		PartnerID:   partner.ID,
		Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		PeriodStart: now.AddDate(0, -1, 0),
		PeriodEnd:   now,
		Status:      constants.EarningStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&earning).Error; err != nil {
		t.Fatalf("create earning failed: %v", err)
	}

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("150.00")),
		PaymentMethodID: method.ID,
		EarningID:       &earning.ID,
		Description:     "July commission",
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	want := fmt.Sprintf("Funded by earning #%d", earning.ID)
	if !strings.HasPrefix(txn.Description, "July commission | ") || !strings.Contains(txn.Description, want) {
		t.Fatalf("description should note the funding earning, got %q", txn.Description)
	}
	if !strings.Contains(txn.Description, earning.PeriodStart.Format("2006-01-02")) {
		t.Fatalf("description should carry the earning period, got %q", txn.Description)
	}

	t.Run("without earning the description stays as given", func(t *testing.T) {
		plain, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
			Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
			PaymentMethodID: method.ID,
			Description:     "August commission",
		})
		if err != nil {
			t.Fatalf("create payout failed: %v", err)
		}
		if plain.Description != "August commission" {
			t.Fatalf("description want unchanged got %q", plain.Description)
		}
	})
}

func TestCancelPayoutAppendsNote(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("200.00")),
		PaymentMethodID: method.ID,
		Description:     "May commission",
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	cancelled, err := svc.CancelPayout(partner.ID, txn.ID)
	if err != nil {
		t.Fatalf("cancel payout failed: %v", err)
	}
	want := "May commission | Cancelled by partner on " + time.Now().Format("2006-01-02")
	if cancelled.Description != want {
		t.Fatalf("description want %q got %q", want, cancelled.Description)
	}

	var reloaded models.WalletTransaction
	if err := db.First(&reloaded, txn.ID).Error; err != nil {
		t.Fatalf("reload payout failed: %v", err)
	}
	if reloaded.Description != want {
		t.Fatalf("stored description want %q got %q", want, reloaded.Description)
	}
}

func TestAvailableBalanceTakesLargerFigure(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, _ := seedPartnerWallet(t, db, "100.00")
	now := time.Now()

	for _, amount := range []string{"120.00", "180.00"} {
		earning := models.PartnerEarning{
			PartnerID:   partner.ID,
			Amount:      models.NewMoneyFromDecimal(decimal.RequireFromString(amount)),
			PeriodStart: now.AddDate(0, -1, 0),
			PeriodEnd:   now,
			Status:      constants.EarningStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.Create(&earning).Error; err != nil {
			t.Fatalf("create earning failed: %v", err)
		}
	}

	available, err := svc.AvailableBalance(partner.ID)
	if err != nil {
		t.Fatalf("available balance failed: %v", err)
	}
	// The larger of balance and pending earnings wins. Summing the two
	// figures would report 400.00 here.
	if !available.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("available want 300.00 got %s", available)
	}
}

func TestCancelPayoutOtherPartnerCannotCancel(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner, _, method := seedPartnerWallet(t, db, "500.00")

	txn, err := svc.CreatePayout(partner.ID, CreatePayoutInput{
		Amount:          models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
		PaymentMethodID: method.ID,
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	other := models.Partner{UserID: 2, ContactName: "Sam", Email: "sam@other.example.com", Status: constants.PartnerStatusActive}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create other partner failed: %v", err)
	}

	if _, err := svc.CancelPayout(other.ID, txn.ID); !errors.Is(err, ErrPayoutNotFound) {
		t.Fatalf("want ErrPayoutNotFound got %v", err)
	}
}

func TestGetWalletCreatesOnFirstUse(t *testing.T) {
	svc, db := setupPayoutTest(t)
	partner := models.Partner{UserID: 9, ContactName: "Lee", Email: "lee@example.com", Status: constants.PartnerStatusActive}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}

	wallet, err := svc.GetWallet(partner.ID)
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if wallet.Currency != constants.DefaultCurrency {
		t.Fatalf("currency want USD got %s", wallet.Currency)
	}
	if !wallet.Balance.Decimal.IsZero() {
		t.Fatalf("fresh wallet should be empty, got %s", wallet.Balance.Decimal)
	}

	again, err := svc.GetWallet(partner.ID)
	if err != nil {
		t.Fatalf("get wallet again failed: %v", err)
	}
	if again.ID != wallet.ID {
		t.Fatalf("wallet should be reused, got %d and %d", wallet.ID, again.ID)
	}
}
