package models

import "time"

type MenuCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_category_venue_name" json:"venue_id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_venue_name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
