package main

import (
	"fmt"
	"time"

	"github.com/adnex-platform/partner-api/internal/config"
	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/logger"
	"github.com/adnex-platform/partner-api/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// Platform settings
	settings := []models.Setting{
		{
			Key: constants.SettingKeyCommissionRates,
			ValueJSON: models.JSON(map[string]interface{}{
				constants.SettingFieldMinimumPayout:  "50",
				constants.SettingFieldProcessingDays: 3,
			}),
		},
		{
			Key: constants.SettingKeyGeneralSettings,
			ValueJSON: models.JSON(map[string]interface{}{
				constants.SettingFieldPlatformName: "AdNex Advertising Platform",
				constants.SettingFieldSupportEmail: "support@adnex.example.com",
				constants.SettingFieldWebsite:      "https://adnex.example.com",
			}),
		},
	}
	for _, setting := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", setting.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("Failed to create setting %s: %v", setting.Key, err)
			} else {
				stdLog.Printf("Created setting: %s", setting.Key)
			}
		} else {
			stdLog.Printf("Setting already exists: %s", setting.Key)
		}
	}

	// Demo partner account
	const demoEmail = "partner@demo.example.com"
	var user models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&user).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("partner123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", err)
		}
		user = models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			DisplayName:  "Demo Partner",
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create demo user: %v", err)
		}
		stdLog.Printf("Created demo user: %s (password: partner123)", demoEmail)
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	var partner models.Partner
	if err := models.DB.Where("user_id = ?", user.ID).First(&partner).Error; err != nil {
		partner = models.Partner{
			UserID:      user.ID,
			CompanyName: "Horizon Media Group",
			ContactName: "Alex Rivera",
			Email:       demoEmail,
			Phone:       "+1-555-0134",
			Address:     "200 Market Street, San Francisco, CA",
			TaxID:       "94-1234567",
			Status:      constants.PartnerStatusActive,
		}
		if err := models.DB.Create(&partner).Error; err != nil {
			stdLog.Fatalf("Failed to create demo partner: %v", err)
		}
		stdLog.Printf("Created demo partner: %s", partner.CompanyName)
	} else {
		stdLog.Printf("Demo partner already exists: %s", partner.CompanyName)
	}

	var wallet models.Wallet
	if err := models.DB.Where("partner_id = ?", partner.ID).First(&wallet).Error; err != nil {
		wallet = models.Wallet{
			PartnerID: partner.ID,
			Balance:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2500.00)),
			Currency:  constants.DefaultCurrency,
		}
		if err := models.DB.Create(&wallet).Error; err != nil {
			stdLog.Fatalf("Failed to create demo wallet: %v", err)
		}
		stdLog.Printf("Created demo wallet with balance %s", wallet.Balance.String())
	} else {
		stdLog.Printf("Demo wallet already exists")
	}

	// Payout destinations
	methods := []models.PaymentMethod{
		{
			WalletID: wallet.ID,
			Type:     constants.PaymentMethodBankTransfer,
			Label:    "Business Checking",
			Details: models.JSON(map[string]interface{}{
				"bankName":      "First National Bank",
				"accountNumber": "123456789012",
				"routingNumber": "021000021",
				"accountHolder": "Horizon Media Group",
			}),
		},
		{
			WalletID: wallet.ID,
			Type:     constants.PaymentMethodPayPal,
			Label:    "Company PayPal",
			Details: models.JSON(map[string]interface{}{
				"email": "finance@horizonmedia.example.com",
			}),
		},
		{
			WalletID: wallet.ID,
			Type:     constants.PaymentMethodCrypto,
			Label:    "USDC Wallet",
			Details: models.JSON(map[string]interface{}{
				"network":       "ethereum",
				"walletAddress": "0x9f8e7d6c5b4a39281706f5e4d3c2b1a098765432",
			}),
		},
	}
	for _, method := range methods {
		var existing models.PaymentMethod
		if err := models.DB.Where("wallet_id = ? AND type = ?", method.WalletID, method.Type).First(&existing).Error; err != nil {
			if err := models.DB.Create(&method).Error; err != nil {
				stdLog.Printf("Failed to create payment method %s: %v", method.Type, err)
			} else {
				stdLog.Printf("Created payment method: %s", method.Type)
			}
		} else {
			stdLog.Printf("Payment method already exists: %s", method.Type)
		}
	}

	// Pending commission for the last three months
	now := time.Now()
	for i := 1; i <= 3; i++ {
		periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Second)
		var existing models.PartnerEarning
		if err := models.DB.Where("partner_id = ? AND period_start = ?", partner.ID, periodStart).First(&existing).Error; err != nil {
			earning := models.PartnerEarning{
				PartnerID:   partner.ID,
				Amount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(float64(300 + i*125))),
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
				Status:      constants.EarningStatusPending,
			}
			if err := models.DB.Create(&earning).Error; err != nil {
				stdLog.Printf("Failed to create earning for %s: %v", periodStart.Format("2006-01"), err)
			} else {
				stdLog.Printf("Created pending earning for %s: %s", periodStart.Format("2006-01"), earning.Amount.String())
			}
		} else {
			stdLog.Printf("Earning already exists for %s", periodStart.Format("2006-01"))
		}
	}

	// Payout history
	type seedTxn struct {
		amount      float64
		status      string
		monthsAgo   int
		daysToClose int
	}
	history := []seedTxn{
		{amount: 800.00, status: constants.TxnStatusCompleted, monthsAgo: 4, daysToClose: 2},
		{amount: 650.00, status: constants.TxnStatusCompleted, monthsAgo: 2, daysToClose: 3},
		{amount: 120.00, status: constants.TxnStatusFailed, monthsAgo: 1, daysToClose: 1},
	}
	for i, item := range history {
		requestedAt := now.AddDate(0, -item.monthsAgo, 0)
		processedAt := requestedAt.AddDate(0, 0, item.daysToClose)
		reference := fmt.Sprintf("WD-%d-%d", partner.ID, requestedAt.UnixNano()+int64(i))
		var existing models.WalletTransaction
		if err := models.DB.Where("wallet_id = ? AND status = ? AND amount = ?", wallet.ID, item.status, models.NewMoneyFromDecimal(decimal.NewFromFloat(item.amount))).First(&existing).Error; err != nil {
			txn := models.WalletTransaction{
				WalletID:    wallet.ID,
				Type:        constants.TxnTypeWithdrawal,
				Amount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(item.amount)),
				Fee:         models.NewMoneyFromDecimal(decimal.Zero),
				Status:      item.status,
				Reference:   reference,
				Description: "Monthly payout",
				RequestedAt: requestedAt,
				ProcessedAt: &processedAt,
			}
			if err := models.DB.Create(&txn).Error; err != nil {
				stdLog.Printf("Failed to create payout %s: %v", reference, err)
			} else {
				stdLog.Printf("Created payout %s (%s)", reference, item.status)
			}
		} else {
			stdLog.Printf("Payout already exists with amount %.2f and status %s", item.amount, item.status)
		}
	}

	stdLog.Printf("Seed finished")
}
