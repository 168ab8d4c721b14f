package models

import "time"

// Guardian is a guest's emergency contact.
type Guardian struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	GuestID      uint      `gorm:"index;not null" json:"guest_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Relationship string    `gorm:"size:64" json:"relationship"`
	MobileNumber string    `gorm:"size:16" json:"mobile_number"`
	Address      string    `gorm:"size:512" json:"address,omitempty"`
}
