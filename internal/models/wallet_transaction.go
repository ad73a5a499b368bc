package models

import (
	"time"
)

// WalletTransaction is a single withdrawal movement against a wallet.
// Status runs PENDING -> PROCESSING -> COMPLETED, with FAILED reachable from
// PENDING or PROCESSING and CANCELLED only from PENDING. Terminal records
// are immutable except for receipt reads.
type WalletTransaction struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	WalletID        uint       `gorm:"index;not null" json:"wallet_id"`
	Type            string     `gorm:"index;not null" json:"type"`
	Amount          Money      `gorm:"type:decimal(20,2);not null" json:"amount"`
	Fee             Money      `gorm:"type:decimal(20,2);not null;default:0" json:"fee"`
	Status          string     `gorm:"index;not null" json:"status"`
	Reference       string     `gorm:"uniqueIndex;not null" json:"reference"`
	Description     string     `gorm:"type:text" json:"description"`
	PaymentMethodID *uint      `gorm:"index" json:"payment_method_id,omitempty"`
	RequestedAt     time.Time  `gorm:"index;not null" json:"requested_at"`
	ProcessedAt     *time.Time `gorm:"index" json:"processed_at"` // set when the record leaves PENDING
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
