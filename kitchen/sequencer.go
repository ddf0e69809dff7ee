package kitchen

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// IngestAction reports what Ingest did with a record.
type IngestAction string

const (
	IngestInserted IngestAction = "inserted"
	IngestUpdated  IngestAction = "updated"
	IngestRemoved  IngestAction = "removed"
	IngestIgnored  IngestAction = "ignored"
)

// closedRetention is how long a completed order id is remembered so late echoes
// of its earlier state are not re-inserted.
const closedRetention = time.Hour

// StampResolution is the precision of updated_at stamps, the finest the
// order store's datetime columns keep.
const StampResolution = time.Microsecond

// Result is the outcome of a transition. Patch is nil when nothing changed.
type Result struct {
	Order   Order
	Patch   *Patch
	Removed bool
}

// Sequencer holds the working set of open kitchen orders for one venue.
// All methods are safe for concurrent use; mutations are serialized.
type Sequencer struct {
	mu     sync.Mutex
	orders map[string]*Order
	closed map[string]time.Time
	now    func() time.Time
}

type Option func(*Sequencer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

func NewSequencer(opts ...Option) *Sequencer {
	s := &Sequencer{
		orders: make(map[string]*Order),
		closed: make(map[string]time.Time),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest reconciles the working set with a record from the store.
func (s *Sequencer) Ingest(rec OrderRecord) (IngestAction, error) {
	if err := rec.Validate(); err != nil {
		return IngestIgnored, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, tracked := s.orders[rec.ID]
	if !OrderStatus(rec.Status).Active() {
		if tracked {
			delete(s.orders, rec.ID)
			return IngestRemoved, nil
		}
		return IngestIgnored, nil
	}

	stamp := rec.CreatedAt
	if rec.UpdatedAt != nil {
		stamp = *rec.UpdatedAt
	}
	if closedAt, ok := s.closed[rec.ID]; ok {
		if !stamp.After(closedAt) {
			return IngestIgnored, nil
		}
		delete(s.closed, rec.ID)
	}

	if tracked {
		if rec.UpdatedAt != nil && rec.UpdatedAt.Before(current.UpdatedAt) {
			return IngestIgnored, nil
		}
		next := rec.toOrder()
		next.CreatedAt = current.CreatedAt
		*current = next
		return IngestUpdated, nil
	}

	o := rec.toOrder()
	s.orders[o.ID] = &o
	return IngestInserted, nil
}

// StartPreparation moves every pending item of the order to preparing.
// An order that is already ready is left alone.
func (s *Sequencer) StartPreparation(orderID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return Result{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status == OrderReady {
		return Result{Order: o.clone()}, nil
	}

	changed := false
	for i := range o.Items {
		if o.Items[i].Status == ItemPending {
			o.Items[i].Status = ItemPreparing
			changed = true
		}
	}
	if !changed {
		return Result{Order: o.clone()}, nil
	}
	return s.commit(o), nil
}

// StartItem moves a single pending item to preparing.
func (s *Sequencer) StartItem(orderID, itemID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, it, err := s.lookup(orderID, itemID)
	if err != nil {
		return Result{}, err
	}
	if it.Status != ItemPending {
		return Result{Order: o.clone()}, nil
	}
	it.Status = ItemPreparing
	return s.commit(o), nil
}

// MarkItemReady marks one item ready. Marking a ready item again changes nothing.
func (s *Sequencer) MarkItemReady(orderID, itemID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, it, err := s.lookup(orderID, itemID)
	if err != nil {
		return Result{}, err
	}
	if it.Status == ItemReady {
		return Result{Order: o.clone()}, nil
	}
	it.Status = ItemReady
	return s.commit(o), nil
}

// CompleteOrder marks a ready order served and drops it from the working set.
func (s *Sequencer) CompleteOrder(orderID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return Result{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status != OrderReady {
		return Result{}, fmt.Errorf("order %s is %s, only ready orders can be completed: %w", orderID, o.Status, ErrInvalidTransition)
	}

	base := o.UpdatedAt
	now := s.stamp(o)
	o.Status = OrderServed
	o.UpdatedAt = now
	delete(s.orders, orderID)
	s.remember(orderID, now)

	status := o.Status
	return Result{
		Order:   o.clone(),
		Patch:   &Patch{OrderID: o.ID, Items: itemRecords(o.Items), Status: &status, UpdatedAt: now, BaseUpdatedAt: base},
		Removed: true,
	}, nil
}

// Retain drops tracked orders whose id is not in keep and that were last updated
// before asOf, and returns the dropped ids. Used after a full re-read of the
// store's active orders taken at asOf.
func (s *Sequencer) Retain(keep []string, asOf time.Time) []string {
	wanted := make(map[string]bool, len(keep))
	for _, id := range keep {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var dropped []string
	for id, o := range s.orders {
		if !wanted[id] && o.UpdatedAt.Before(asOf) {
			delete(s.orders, id)
			dropped = append(dropped, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// Order returns a copy of a tracked order.
func (s *Sequencer) Order(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return Order{}, false
	}
	return o.clone(), true
}

// Active returns copies of all tracked orders, oldest first.
func (s *Sequencer) Active() []Order {
	s.mu.Lock()
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.clone())
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Tickets lays out every tracked order for the kitchen display.
func (s *Sequencer) Tickets(overdueAfter time.Duration) []Ticket {
	now := s.now()
	orders := s.Active()
	tickets := make([]Ticket, 0, len(orders))
	for _, o := range orders {
		tickets = append(tickets, BuildTicket(o, now, overdueAfter))
	}
	return tickets
}

// Len is the size of the working set.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *Sequencer) lookup(orderID, itemID string) (*Order, *Item, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	it := o.item(itemID)
	if it == nil {
		return nil, nil, fmt.Errorf("item %s in order %s: %w", itemID, orderID, ErrNotFound)
	}
	return o, it, nil
}

// commit re-derives the order status after an item mutation. Caller holds mu.
func (s *Sequencer) commit(o *Order) Result {
	base := o.UpdatedAt
	o.Status = Aggregate(o.Items)
	o.UpdatedAt = s.stamp(o)
	status := o.Status
	return Result{
		Order: o.clone(),
		Patch: &Patch{OrderID: o.ID, Items: itemRecords(o.Items), Status: &status, UpdatedAt: o.UpdatedAt, BaseUpdatedAt: base},
	}
}

// stamp is the next updated_at of o. Stamps of one order strictly increase, so
// the store can tell an older patch from a newer one. Caller holds mu.
func (s *Sequencer) stamp(o *Order) time.Time {
	next := s.now().Truncate(StampResolution)
	if !next.After(o.UpdatedAt) {
		next = o.UpdatedAt.Truncate(StampResolution).Add(StampResolution)
	}
	return next
}

func (s *Sequencer) remember(orderID string, at time.Time) {
	s.closed[orderID] = at
	for id, t := range s.closed {
		if at.Sub(t) > closedRetention {
			delete(s.closed, id)
		}
	}
}
