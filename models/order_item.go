package models

import "github.com/aytac78/order-business-app-sub001/kitchen"

// OrderItem is one ticket line inside Order.Items.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   string  `json:"status,omitempty"`
}

func (it OrderItem) Record() kitchen.ItemRecord {
	return kitchen.ItemRecord{
		ID:       it.ID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Notes:    it.Notes,
		Category: it.Category,
		Status:   it.Status,
	}
}

// OrderItemsFromRecords converts patch items back to the stored shape.
func OrderItemsFromRecords(records []kitchen.ItemRecord) []OrderItem {
	items := make([]OrderItem, 0, len(records))
	for _, r := range records {
		items = append(items, OrderItem{
			ID:       r.ID,
			Name:     r.Name,
			Quantity: r.Quantity,
			Notes:    r.Notes,
			Category: r.Category,
			Status:   r.Status,
		})
	}
	return items
}
