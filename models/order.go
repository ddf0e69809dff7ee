package models

import (
	"time"

	"github.com/aytac78/order-business-app-sub001/kitchen"
)

// Order adalah baris order venue, items disimpan sebagai kolom JSON
// sama seperti bentuk record di store. UpdatedAt diisi oleh penulis
// (stamp dari sequencer), bukan oleh gorm.
type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VenueID     string      `gorm:"type:varchar(36);not null;index:idx_orders_venue_status" json:"venue_id"`
	OrderNumber string      `gorm:"type:varchar(32);not null" json:"order_number"`
	TableNumber *string     `gorm:"type:varchar(32)" json:"table_number,omitempty"`
	Type        string      `gorm:"type:varchar(20);not null;default:'dine_in'" json:"type"`
	Status      string      `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_venue_status" json:"status"`
	Items       []OrderItem `gorm:"serializer:json;type:text;not null" json:"items"`
	CreatedAt   time.Time   `gorm:"not null;index;precision:6" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime:false;precision:6" json:"updated_at"`
}

// Record -> bentuk OrderRecord untuk sequencer
func (o *Order) Record() kitchen.OrderRecord {
	items := make([]kitchen.ItemRecord, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, it.Record())
	}
	updatedAt := o.UpdatedAt
	return kitchen.OrderRecord{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		TableNumber: o.TableNumber,
		Type:        o.Type,
		Status:      o.Status,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}
