package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Guest is a lodger tracked by the operator. IsActive is the soft-state
// flag: removed guests are marked inactive, never purged, so payment history
// stays intact.
type Guest struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	FirstName      string          `gorm:"size:255;not null" json:"first_name"`
	LastName       string          `gorm:"size:255;not null" json:"last_name"`
	Age            int             `gorm:"not null" json:"age"`
	Gender         string          `gorm:"size:16" json:"gender"`
	MobileNumber   string          `gorm:"size:16;index;not null" json:"mobile_number"`
	Email          string          `gorm:"size:255" json:"email,omitempty"`
	IDNumber       string          `gorm:"size:16;not null" json:"id_number"`
	PhotoPath      string          `gorm:"size:512" json:"photo_path,omitempty"`
	RoomNumber     string          `gorm:"size:32;not null" json:"room_number"`
	BedNumber      string          `gorm:"size:32" json:"bed_number,omitempty"`
	PaymentType    string          `gorm:"size:16;not null" json:"payment_type"` // daily, weekly, monthly
	PaymentAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"payment_amount"`
	PaymentDueDate time.Time       `gorm:"not null;index" json:"payment_due_date"`
	JoinDate       time.Time       `gorm:"not null" json:"join_date"`
	IsActive       bool            `gorm:"default:true;not null;index" json:"is_active"`

	Guardians        []Guardian        `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"guardians,omitempty"`
	Payments         []Payment         `gorm:"foreignKey:GuestID" json:"payments,omitempty"`
	NotificationLogs []NotificationLog `gorm:"foreignKey:GuestID" json:"-"`
}

// FullName joins the name fields for display and reminder messages.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
