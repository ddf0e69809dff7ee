package models

import (
	"time"
)

// Notification -> pesan untuk staff lantai, mis. order siap diantar
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   string    `gorm:"type:varchar(36);not null;index" json:"venue_id"`
	OrderID   *string   `gorm:"type:varchar(36)" json:"order_id,omitempty"`
	Title     *string   `gorm:"type:varchar(100)" json:"title,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
