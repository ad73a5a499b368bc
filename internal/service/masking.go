package service

import (
	"strings"

	"github.com/adnex-platform/partner-api/internal/models"
)

const maskedValue = "***"

// MaskSensitiveData returns a copy of payment method details safe to expose
// over the API. Recognized fields keep a displayable hint; everything else is
// masked outright so that newly added detail fields never leak by accident.
func MaskSensitiveData(details models.JSON) models.JSON {
	masked := models.JSON{}
	if len(details) == 0 {
		return masked
	}
	for key, raw := range details {
		value, ok := raw.(string)
		if !ok {
			masked[key] = maskedValue
			continue
		}
		switch key {
		case "accountNumber", "routingNumber", "cardNumber":
			masked[key] = maskTailDigits(value)
		case "cvv":
			masked[key] = maskedValue
		case "email":
			masked[key] = maskEmail(value)
		case "walletAddress":
			masked[key] = maskWalletAddress(value)
		case "privateKey":
			masked[key] = "[REDACTED]"
		default:
			masked[key] = maskedValue
		}
	}
	return masked
}

// maskTailDigits keeps the last four characters behind a fixed prefix.
// Values of four characters or fewer are redacted entirely since keeping
// a tail would reproduce the whole secret.
func maskTailDigits(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

// maskEmail keeps up to three characters of the local part and the domain.
func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return maskedValue
	}
	local := value[:at]
	domain := value[at+1:]
	keep := 3
	if len(local) < keep {
		keep = len(local)
	}
	return local[:keep] + "***@" + domain
}

// maskWalletAddress keeps the first and last four characters.
func maskWalletAddress(value string) string {
	if len(value) <= 8 {
		return maskedValue
	}
	return value[:4] + "..." + value[len(value)-4:]
}
