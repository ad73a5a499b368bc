package constants

// Internal withdrawal transaction statuses. PENDING and CANCELLED are owned
// by this service; the settlement process moves records through PROCESSING
// to COMPLETED or FAILED.
const (
	TxnStatusPending    = "PENDING"
	TxnStatusProcessing = "PROCESSING"
	TxnStatusCompleted  = "COMPLETED"
	TxnStatusFailed     = "FAILED"
	TxnStatusCancelled  = "CANCELLED"
)

// Externally visible payout statuses.
const (
	PayoutStatusPending   = "PENDING"
	PayoutStatusApproved  = "APPROVED"
	PayoutStatusCompleted = "COMPLETED"
	PayoutStatusRejected  = "REJECTED"
	PayoutStatusCancelled = "CANCELLED"
)

// Transaction types.
const (
	TxnTypeWithdrawal = "WITHDRAWAL"
)

// Partner earning statuses.
const (
	EarningStatusPending   = "PENDING"
	EarningStatusProcessed = "PROCESSED"
)

// Payment method types.
const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodPayPal       = "PAYPAL"
	PaymentMethodCrypto       = "CRYPTO"
)

// Setting keys and fields.
const (
	SettingKeyCommissionRates = "commission_rates"
	SettingKeyGeneralSettings = "general_settings"

	SettingFieldMinimumPayout  = "minimum_payout"
	SettingFieldProcessingDays = "payout_processing_days"
	SettingFieldPlatformName   = "platform_name"
	SettingFieldSupportEmail   = "support_email"
	SettingFieldWebsite        = "website"
)

// Account statuses.
const (
	UserStatusActive    = "active"
	UserStatusDisabled  = "disabled"
	PartnerStatusActive = "active"
)

// DefaultCurrency is applied to lazily created wallets.
const DefaultCurrency = "USD"
