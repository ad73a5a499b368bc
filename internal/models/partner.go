package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner is an advertising partner. Contact fields may be blank, in which
// case read models fall back to the linked user account.
type Partner struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName string         `gorm:"not null" json:"company_name"`
	ContactName string         `gorm:"default:''" json:"contact_name"`
	Email       string         `gorm:"index" json:"email"`
	Phone       string         `gorm:"default:''" json:"phone"`
	Address     string         `gorm:"default:''" json:"address"`
	TaxID       string         `gorm:"default:''" json:"tax_id"`
	Status      string         `gorm:"index;default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Partner) TableName() string {
	return "partners"
}
