package service

import "errors"

// Business errors surfaced to handlers through errors.Is matching.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account is disabled")

	ErrPartnerNotFound = errors.New("partner not found")
	ErrWalletNotFound  = errors.New("wallet not found")

	ErrPayoutNotFound              = errors.New("payout not found")
	ErrPayoutInvalidAmount         = errors.New("payout amount must be greater than zero")
	ErrPayoutPaymentMethodRequired = errors.New("payment method is required")
	ErrPayoutPaymentMethodInvalid  = errors.New("payment method not found")
	ErrPayoutEarningInvalid        = errors.New("earning is not available for payout")
	ErrPayoutBelowMinimum          = errors.New("payout amount below minimum")
	ErrPayoutInsufficientBalance   = errors.New("insufficient balance")
	ErrPayoutNotCancellable        = errors.New("only pending payouts can be cancelled")
	ErrPayoutStatusInvalid         = errors.New("invalid payout status")

	ErrReceiptNotAvailable = errors.New("receipt is only available for completed payouts")

	ErrWalletCreateFailed      = errors.New("failed to create wallet")
	ErrWalletUpdateFailed      = errors.New("failed to update wallet")
	ErrTransactionCreateFailed = errors.New("failed to create transaction")
	ErrTransactionUpdateFailed = errors.New("failed to update transaction")
	ErrEarningUpdateFailed     = errors.New("failed to update earning")
)
