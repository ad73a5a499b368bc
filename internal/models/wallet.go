package models

import (
	"time"
)

// Wallet holds a partner's withdrawable balance. One wallet per partner,
// created lazily on the first payout request. The balance never goes
// negative after a completed operation.
type Wallet struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PartnerID uint      `gorm:"uniqueIndex;not null" json:"partner_id"`
	Balance   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	Currency  string    `gorm:"not null;default:'USD'" json:"currency"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (Wallet) TableName() string {
	return "wallets"
}
