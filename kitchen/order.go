package kitchen

import (
	"sort"
	"time"
)

// OrderType is how the order leaves the kitchen.
type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
	OrderQR       OrderType = "qr_order"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderDineIn, OrderTakeaway, OrderDelivery, OrderQR:
		return true
	}
	return false
}

// Item is one dish or drink line on a kitchen ticket.
type Item struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Quantity int        `json:"quantity"`
	Notes    *string    `json:"notes,omitempty"`
	Category *string    `json:"category,omitempty"`
	Status   ItemStatus `json:"status"`
}

// Order is the sequencer's view of a kitchen-bound order.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	TableNumber *string     `json:"table_number,omitempty"`
	Type        OrderType   `json:"type"`
	Items       []Item      `json:"items"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (o *Order) item(itemID string) *Item {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o Order) clone() Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}

// SortItems returns the items ordered by priority rank, lowest first.
// Items with the same rank keep their ticket order.
func SortItems(items []Item) []Item {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Classify(sorted[i].Category).PriorityRank < Classify(sorted[j].Category).PriorityRank
	})
	return sorted
}

// ElapsedMinutes returns whole minutes since createdAt, truncated, never negative.
func ElapsedMinutes(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// DefaultOverdueAfter is how long a ticket may stay open before it is flagged.
const DefaultOverdueAfter = 10 * time.Minute

// TicketLine is an item as rendered on the kitchen display.
type TicketLine struct {
	Item
	Classification
}

// Ticket is an order laid out for the kitchen: lines in firing order plus timing flags.
type Ticket struct {
	OrderID        string       `json:"order_id"`
	OrderNumber    string       `json:"order_number"`
	TableNumber    *string      `json:"table_number,omitempty"`
	Type           OrderType    `json:"type"`
	Status         OrderStatus  `json:"status"`
	Lines          []TicketLine `json:"lines"`
	CreatedAt      time.Time    `json:"created_at"`
	ElapsedMinutes int          `json:"elapsed_minutes"`
	Overdue        bool         `json:"overdue"`
}

// BuildTicket lays out an order for display at the given time.
func BuildTicket(o Order, now time.Time, overdueAfter time.Duration) Ticket {
	sorted := SortItems(o.Items)
	lines := make([]TicketLine, 0, len(sorted))
	for _, it := range sorted {
		lines = append(lines, TicketLine{Item: it, Classification: Classify(it.Category)})
	}
	elapsed := ElapsedMinutes(o.CreatedAt, now)
	return Ticket{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		TableNumber:    o.TableNumber,
		Type:           o.Type,
		Status:         o.Status,
		Lines:          lines,
		CreatedAt:      o.CreatedAt,
		ElapsedMinutes: elapsed,
		Overdue:        o.Status != OrderReady && now.Sub(o.CreatedAt) > overdueAfter,
	}
}
