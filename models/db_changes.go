package models

import (
	"time"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// DBChange adalah change log append-only, ditulis dalam transaksi yang sama
// dengan perubahan row-nya. ChangeMonitor membaca log ini.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_venue"`
	RecordID   string    `gorm:"type:varchar(36);not null"`
	VenueID    string    `gorm:"type:varchar(36);not null;index:idx_table_venue"`
	ActionType string    `gorm:"type:varchar(10);not null"`
	ChangedAt  time.Time `gorm:"not null"`
}
