package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one recorded payment. Records are immutable after creation
// except for soft deletion via DeletedAt.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	GuestID       uint            `gorm:"index;not null" json:"guest_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null;index" json:"payment_date"`
	PaymentType   string          `gorm:"size:16;not null" json:"payment_type"`   // cadence at recording time
	PaymentMethod string          `gorm:"size:32;not null" json:"payment_method"` // cash, upi, card, bank_transfer
	ReceiptNumber string          `gorm:"size:64;not null;uniqueIndex" json:"receipt_number"`
	Notes         string          `gorm:"size:512" json:"notes,omitempty"`
	PeriodStart   time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd     time.Time       `gorm:"not null" json:"period_end"`
	Status        string          `gorm:"size:16;not null" json:"status"` // paid, pending, partial
}
