package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutListFilter filters wallet transaction listings. Date bounds apply
// to the request date and are inclusive, as are the amount bounds.
type PayoutListFilter struct {
	WalletID        uint
	Type            string
	Statuses        []string
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

// EarningListFilter filters partner earning listings.
type EarningListFilter struct {
	PartnerID uint
	Status    string
	Page      int
	PageSize  int
}
