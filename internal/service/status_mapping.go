package service

import "github.com/adnex-platform/partner-api/internal/constants"

// externalPayoutStatus maps ledger transaction statuses to the payout
// statuses shown to partners.
var externalPayoutStatus = map[string]string{
	constants.TxnStatusPending:    constants.PayoutStatusPending,
	constants.TxnStatusProcessing: constants.PayoutStatusApproved,
	constants.TxnStatusCompleted:  constants.PayoutStatusCompleted,
	constants.TxnStatusFailed:     constants.PayoutStatusRejected,
	constants.TxnStatusCancelled:  constants.PayoutStatusCancelled,
}

// internalTxnStatuses is the reverse mapping, used to translate an
// external status filter into the ledger statuses it covers.
var internalTxnStatuses = map[string][]string{
	constants.PayoutStatusPending:   {constants.TxnStatusPending},
	constants.PayoutStatusApproved:  {constants.TxnStatusProcessing},
	constants.PayoutStatusCompleted: {constants.TxnStatusCompleted},
	constants.PayoutStatusRejected:  {constants.TxnStatusFailed},
	constants.PayoutStatusCancelled: {constants.TxnStatusCancelled},
}

// MapPayoutStatus converts a ledger status to its partner facing form.
// Unknown statuses report as PENDING rather than leaking internal values.
func MapPayoutStatus(txnStatus string) string {
	if external, ok := externalPayoutStatus[txnStatus]; ok {
		return external
	}
	return constants.PayoutStatusPending
}

// InternalPayoutStatuses resolves an external status filter to ledger
// statuses. The second return reports whether the status is recognized.
func InternalPayoutStatuses(external string) ([]string, bool) {
	statuses, ok := internalTxnStatuses[external]
	if !ok {
		return nil, false
	}
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out, true
}
