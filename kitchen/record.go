package kitchen

import (
	"fmt"
	"strings"
	"time"
)

// ItemRecord is an item as it travels to and from the venue order store.
type ItemRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// OrderRecord is the store's row shape for an order.
type OrderRecord struct {
	ID          string       `json:"id"`
	OrderNumber string       `json:"order_number"`
	TableNumber *string      `json:"table_number,omitempty"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	Items       []ItemRecord `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// Patch is the partial update a transition proposes to the store.
// BaseUpdatedAt is the order's updated_at before the transition.
type Patch struct {
	OrderID       string       `json:"-"`
	Items         []ItemRecord `json:"items,omitempty"`
	Status        *OrderStatus `json:"status,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at"`
	BaseUpdatedAt time.Time    `json:"-"`
}

// BuiltOn reports whether p was derived from a state that already contained earlier.
func (p Patch) BuiltOn(earlier Patch) bool {
	return !p.BaseUpdatedAt.Before(earlier.UpdatedAt)
}

// MergePatch folds an unsent earlier patch into a later one that was built
// without it. Item progress never goes backwards: each item keeps the more
// advanced of its two statuses. A terminal status wins over an active one,
// the later terminal status over an earlier one; an active status is
// re-derived from the merged items.
func MergePatch(earlier, later Patch) Patch {
	merged := later
	switch {
	case later.Items == nil:
		merged.Items = append([]ItemRecord(nil), earlier.Items...)
	default:
		progress := make(map[string]ItemStatus, len(earlier.Items))
		for _, it := range earlier.Items {
			progress[it.ID] = itemStatusOf(it)
		}
		merged.Items = make([]ItemRecord, len(later.Items))
		for i, it := range later.Items {
			if st, ok := progress[it.ID]; ok && st.rank() > itemStatusOf(it).rank() {
				it.Status = string(st)
			}
			merged.Items[i] = it
		}
	}

	switch {
	case later.Status != nil && !later.Status.Active():
		// served/cancelled dari patch terakhir tetap dipakai
	case earlier.Status != nil && !earlier.Status.Active():
		merged.Status = earlier.Status
	case merged.Items != nil:
		status := aggregateRecords(merged.Items)
		merged.Status = &status
	case later.Status == nil:
		merged.Status = earlier.Status
	}

	if earlier.UpdatedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = earlier.UpdatedAt
	}
	if earlier.BaseUpdatedAt.Before(merged.BaseUpdatedAt) {
		merged.BaseUpdatedAt = earlier.BaseUpdatedAt
	}
	return merged
}

// WithPatch returns r as it will look once p reaches the store.
func (r OrderRecord) WithPatch(p Patch) OrderRecord {
	if p.Items != nil {
		r.Items = append([]ItemRecord(nil), p.Items...)
	}
	if p.Status != nil {
		r.Status = string(*p.Status)
	}
	at := p.UpdatedAt
	r.UpdatedAt = &at
	return r
}

func itemStatusOf(it ItemRecord) ItemStatus {
	if it.Status == "" {
		return ItemPending
	}
	return ItemStatus(it.Status)
}

func aggregateRecords(records []ItemRecord) OrderStatus {
	items := make([]Item, len(records))
	for i, it := range records {
		items[i] = Item{ID: it.ID, Status: itemStatusOf(it)}
	}
	return Aggregate(items)
}

// Validate checks the fields the sequencer relies on.
func (r OrderRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if !OrderStatus(r.Status).Valid() {
		return fmt.Errorf("%w: order %s has unknown status %q", ErrValidation, r.ID, r.Status)
	}
	if r.Type != "" && !OrderType(r.Type).Valid() {
		return fmt.Errorf("%w: order %s has unknown type %q", ErrValidation, r.ID, r.Type)
	}
	// Record terminal cukup punya id + status, items tidak dipakai.
	if !OrderStatus(r.Status).Active() {
		return nil
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: order %s has no items", ErrValidation, r.ID)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: order %s has no created_at", ErrValidation, r.ID)
	}
	seen := make(map[string]bool, len(r.Items))
	for i, it := range r.Items {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("%w: order %s item #%d has no id", ErrValidation, r.ID, i)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: order %s has duplicate item id %s", ErrValidation, r.ID, it.ID)
		}
		seen[it.ID] = true
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: order %s item %s has quantity %d", ErrValidation, r.ID, it.ID, it.Quantity)
		}
		if it.Status != "" && !ItemStatus(it.Status).Valid() {
			return fmt.Errorf("%w: order %s item %s has unknown status %q", ErrValidation, r.ID, it.ID, it.Status)
		}
	}
	return nil
}

// toOrder converts a validated active record. Items without a status start as pending
// and the order status is re-derived from the items.
func (r OrderRecord) toOrder() Order {
	items := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		status := ItemStatus(it.Status)
		if status == "" {
			status = ItemPending
		}
		items = append(items, Item{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Notes:    it.Notes,
			Category: it.Category,
			Status:   status,
		})
	}
	orderType := OrderType(r.Type)
	if orderType == "" {
		orderType = OrderDineIn
	}
	updatedAt := r.CreatedAt
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}
	return Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		TableNumber: r.TableNumber,
		Type:        orderType,
		Items:       items,
		Status:      Aggregate(items),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

// Record converts an order back to its store shape.
func (o Order) Record() OrderRecord {
	updatedAt := o.UpdatedAt
	return OrderRecord{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		TableNumber: o.TableNumber,
		Type:        string(o.Type),
		Status:      string(o.Status),
		Items:       itemRecords(o.Items),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}

func itemRecords(items []Item) []ItemRecord {
	out := make([]ItemRecord, 0, len(items))
	for _, it := range items {
		out = append(out, ItemRecord{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Notes:    it.Notes,
			Category: it.Category,
			Status:   string(it.Status),
		})
	}
	return out
}
