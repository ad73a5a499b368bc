package models

import (
	"time"
)

// PartnerEarning is a unit of pending commission owed to a partner for a
// period. Status is PROCESSED exactly when TransactionID points at the
// withdrawal that consumed it; cancelling that withdrawal reverts the
// earning to PENDING and clears the reference.
type PartnerEarning struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PartnerID     uint      `gorm:"index;not null" json:"partner_id"`
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"`
	PeriodStart   time.Time `gorm:"index;not null" json:"period_start"`
	PeriodEnd     time.Time `gorm:"index;not null" json:"period_end"`
	Status        string    `gorm:"index;not null;default:'PENDING'" json:"status"`
	TransactionID *uint     `gorm:"index" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (PartnerEarning) TableName() string {
	return "partner_earnings"
}
