package models

import "time"

// NotificationLog records every reminder produced for a guest, whether by the
// scheduler or the manual remind endpoint. Delivery is an external concern;
// this table is the audit trail.
type NotificationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	GuestID   uint      `gorm:"index;not null" json:"guest_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"size:1024;not null" json:"message"`
	SentAt    time.Time `gorm:"not null;index" json:"sent_at"`
	Clicked   bool      `gorm:"default:false" json:"clicked"`
}
