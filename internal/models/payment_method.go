package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod is a payout destination owned by a wallet. Details is an
// opaque payload whose schema varies per type; it must pass through the
// masking utility before leaving the service.
type PaymentMethod struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	WalletID  uint           `gorm:"index;not null" json:"wallet_id"`
	Type      string         `gorm:"index;not null" json:"type"`
	Label     string         `gorm:"default:''" json:"label"`
	Details   JSON           `gorm:"type:json" json:"details"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
