package partner

import (
	"errors"

	"github.com/adnex-platform/partner-api/internal/http/response"
	"github.com/adnex-platform/partner-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if msg == "" {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account is disabled"},
	{target: service.ErrPartnerNotFound, code: response.CodeForbidden, msg: "no partner profile linked to this account"},
}

var payoutCreateErrorRules = []mappedHandlerError{
	{target: service.ErrPayoutInvalidAmount, code: response.CodeBadRequest, msg: "payout amount must be greater than zero"},
	{target: service.ErrPayoutPaymentMethodRequired, code: response.CodeBadRequest, msg: "payment method is required"},
	{target: service.ErrPayoutPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method not found"},
	{target: service.ErrPayoutEarningInvalid, code: response.CodeBadRequest, msg: "earning is not available for payout"},
	// The message carries the configured minimum, so keep the error text.
	{target: service.ErrPayoutBelowMinimum, code: response.CodeBadRequest},
	{target: service.ErrPayoutInsufficientBalance, code: response.CodeBadRequest, msg: "insufficient balance"},
	{target: service.ErrPartnerNotFound, code: response.CodeNotFound, msg: "partner not found"},
}

var payoutCancelErrorRules = []mappedHandlerError{
	{target: service.ErrPayoutNotFound, code: response.CodeNotFound, msg: "payout not found"},
	// A payout past PENDING cancels as not found, not as a validation error.
	{target: service.ErrPayoutNotCancellable, code: response.CodeNotFound, msg: "payout not found in a cancellable state"},
}

var payoutReadErrorRules = []mappedHandlerError{
	{target: service.ErrPayoutNotFound, code: response.CodeNotFound, msg: "payout not found"},
	{target: service.ErrPayoutStatusInvalid, code: response.CodeBadRequest, msg: "invalid payout status filter"},
	{target: service.ErrPartnerNotFound, code: response.CodeNotFound, msg: "partner not found"},
}

var receiptErrorRules = []mappedHandlerError{
	{target: service.ErrPayoutNotFound, code: response.CodeNotFound, msg: "payout not found"},
	{target: service.ErrReceiptNotAvailable, code: response.CodeBadRequest, msg: "receipt is only available for completed payouts"},
	{target: service.ErrPartnerNotFound, code: response.CodeNotFound, msg: "partner not found"},
}
