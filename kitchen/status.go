package kitchen

// ItemStatus is the preparation state of a single ticket line.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
)

// Valid reports whether s is one of the known item states.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPreparing, ItemReady:
		return true
	}
	return false
}

// rank orders item states by progress: pending < preparing < ready.
func (s ItemStatus) rank() int {
	switch s {
	case ItemReady:
		return 2
	case ItemPreparing:
		return 1
	}
	return 0
}

// OrderStatus is the order-level state as stored by the venue order store.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ActiveStatuses is the filter used for the kitchen working set.
var ActiveStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady}

// Active reports whether an order with this status belongs on the kitchen display.
func (s OrderStatus) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return s.Active()
}

// Aggregate derives the order status from its items: ready when every item is
// ready, preparing when any item is preparing or some but not all are ready,
// pending otherwise.
//
// A mix of ready and pending items with nothing preparing counts as preparing,
// not pending: the kitchen has already started on the order.
func Aggregate(items []Item) OrderStatus {
	if len(items) == 0 {
		return OrderPending
	}
	ready, preparing := 0, 0
	for _, it := range items {
		switch it.Status {
		case ItemReady:
			ready++
		case ItemPreparing:
			preparing++
		}
	}
	switch {
	case ready == len(items):
		return OrderReady
	case preparing > 0 || ready > 0:
		return OrderPreparing
	default:
		return OrderPending
	}
}
