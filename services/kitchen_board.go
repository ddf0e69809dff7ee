package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/metrics"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// BoardListener receives kitchen display changes, e.g. to push them to screens.
type BoardListener interface {
	TicketChanged(venueID string, ticket kitchen.Ticket)
	TicketRemoved(venueID, orderID string)
	OrderReady(venueID string, order kitchen.Order)
}

type BoardOptions struct {
	Retrier      *WriteRetrier
	Listener     BoardListener
	OverdueAfter time.Duration
	Clock        func() time.Time
}

// KitchenBoard is the open kitchen display of one venue: a sequencer fed by the
// store's change feed. Close releases the subscription.
type KitchenBoard struct {
	VenueID string

	seq          *kitchen.Sequencer
	store        VenueOrderStore
	retrier      *WriteRetrier
	listener     BoardListener
	overdueAfter time.Duration
	now          func() time.Time
	handle       string
}

// OpenKitchenBoard subscribes to the venue's feed and loads its active orders.
// The subscription is taken first so no change between the two is missed.
func OpenKitchenBoard(ctx context.Context, venueID string, store VenueOrderStore, opts BoardOptions) (*KitchenBoard, error) {
	if opts.OverdueAfter <= 0 {
		opts.OverdueAfter = kitchen.DefaultOverdueAfter
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	b := &KitchenBoard{
		VenueID:      venueID,
		seq:          kitchen.NewSequencer(kitchen.WithClock(opts.Clock)),
		store:        store,
		retrier:      opts.Retrier,
		listener:     opts.Listener,
		overdueAfter: opts.OverdueAfter,
		now:          opts.Clock,
	}

	handle, err := store.Subscribe(venueID, b.handleChange)
	if err != nil {
		return nil, fmt.Errorf("subscribe venue %s: %w", venueID, err)
	}
	b.handle = handle

	if err := b.Resync(ctx); err != nil {
		store.Unsubscribe(handle)
		return nil, fmt.Errorf("list active orders of venue %s: %w", venueID, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{"venue_id": venueID, "orders": b.seq.Len()}).Info("kitchen board opened")
	return b, nil
}

// Resync re-reads the venue's active orders from the store into the working set.
func (b *KitchenBoard) Resync(ctx context.Context) error {
	asOf := b.now()
	records, err := b.store.ListActiveOrders(ctx, b.VenueID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		if b.ingest(rec) != kitchen.IngestIgnored {
			b.notifyTicket(rec.ID)
		}
	}
	for _, id := range b.seq.Retain(ids, asOf) {
		if b.listener != nil {
			b.listener.TicketRemoved(b.VenueID, id)
		}
	}
	b.updateGauge()
	return nil
}

// Close menghentikan langganan change feed venue ini
func (b *KitchenBoard) Close() {
	b.store.Unsubscribe(b.handle)
	metrics.OpenTickets.DeleteLabelValues(b.VenueID)
	utils.InfoLogger.WithFields(logrus.Fields{"venue_id": b.VenueID}).Info("kitchen board closed")
}

// Tickets returns the open tickets, oldest first, lines in firing order.
func (b *KitchenBoard) Tickets() []kitchen.Ticket {
	return b.seq.Tickets(b.overdueAfter)
}

func (b *KitchenBoard) Order(orderID string) (kitchen.Order, bool) {
	return b.seq.Order(orderID)
}

func (b *KitchenBoard) StartPreparation(ctx context.Context, orderID string) (kitchen.Order, error) {
	return b.apply(ctx, "start_preparation", func() (kitchen.Result, error) {
		return b.seq.StartPreparation(orderID)
	})
}

func (b *KitchenBoard) StartItem(ctx context.Context, orderID, itemID string) (kitchen.Order, error) {
	return b.apply(ctx, "start_item", func() (kitchen.Result, error) {
		return b.seq.StartItem(orderID, itemID)
	})
}

func (b *KitchenBoard) MarkItemReady(ctx context.Context, orderID, itemID string) (kitchen.Order, error) {
	return b.apply(ctx, "mark_item_ready", func() (kitchen.Result, error) {
		return b.seq.MarkItemReady(orderID, itemID)
	})
}

func (b *KitchenBoard) CompleteOrder(ctx context.Context, orderID string) (kitchen.Order, error) {
	return b.apply(ctx, "complete_order", func() (kitchen.Result, error) {
		return b.seq.CompleteOrder(orderID)
	})
}

// apply runs a transition, publishes it and writes the patch outside the sequencer lock.
// A failed write leaves the in-memory state in place and is returned wrapped in
// kitchen.ErrStoreWrite.
func (b *KitchenBoard) apply(ctx context.Context, op string, transition func() (kitchen.Result, error)) (kitchen.Order, error) {
	res, err := transition()
	if errors.Is(err, kitchen.ErrNotFound) {
		// bisa jadi event dari feed belum sampai, sinkron ulang lalu coba sekali lagi
		if syncErr := b.Resync(ctx); syncErr == nil {
			res, err = transition()
		}
	}
	if err != nil {
		metrics.KitchenTransitions.WithLabelValues(op, resultLabel(err)).Inc()
		return kitchen.Order{}, err
	}
	if res.Patch == nil {
		metrics.KitchenTransitions.WithLabelValues(op, "noop").Inc()
		return res.Order, nil
	}

	b.publish(res)
	b.updateGauge()

	if err := b.write(ctx, *res.Patch); err != nil {
		metrics.KitchenTransitions.WithLabelValues(op, "store_error").Inc()
		return res.Order, err
	}
	metrics.KitchenTransitions.WithLabelValues(op, "ok").Inc()
	return res.Order, nil
}

func (b *KitchenBoard) write(ctx context.Context, patch kitchen.Patch) error {
	var err error
	if b.retrier != nil {
		err = b.retrier.Write(ctx, patch)
	} else {
		err = b.store.UpdateOrder(ctx, patch.OrderID, patch)
	}
	if err == nil {
		return nil
	}
	utils.ErrorLogger.WithFields(logrus.Fields{
		"venue_id": b.VenueID,
		"order_id": patch.OrderID,
	}).Errorf("order store write failed: %v", err)
	return fmt.Errorf("%w: order %s: %v", kitchen.ErrStoreWrite, patch.OrderID, err)
}

func (b *KitchenBoard) publish(res kitchen.Result) {
	if b.listener == nil {
		return
	}
	if res.Removed {
		b.listener.TicketRemoved(b.VenueID, res.Order.ID)
		return
	}
	b.listener.TicketChanged(b.VenueID, kitchen.BuildTicket(res.Order, b.now(), b.overdueAfter))
	if res.Order.Status == kitchen.OrderReady {
		b.listener.OrderReady(b.VenueID, res.Order)
	}
}

// handleChange dipanggil oleh change feed untuk setiap insert/update order venue ini.
func (b *KitchenBoard) handleChange(ev OrderEvent) {
	action := b.ingest(ev.Record)
	b.updateGauge()
	if b.listener == nil {
		return
	}
	switch action {
	case kitchen.IngestInserted, kitchen.IngestUpdated:
		b.notifyTicket(ev.Record.ID)
	case kitchen.IngestRemoved:
		b.listener.TicketRemoved(b.VenueID, ev.Record.ID)
	}
}

func (b *KitchenBoard) notifyTicket(orderID string) {
	if b.listener == nil {
		return
	}
	if o, ok := b.seq.Order(orderID); ok {
		b.listener.TicketChanged(b.VenueID, kitchen.BuildTicket(o, b.now(), b.overdueAfter))
	}
}

func (b *KitchenBoard) ingest(rec kitchen.OrderRecord) kitchen.IngestAction {
	action, err := b.seq.Ingest(b.withUnsent(rec))
	if err != nil {
		metrics.KitchenIngest.WithLabelValues("rejected").Inc()
		utils.ErrorLogger.WithFields(logrus.Fields{
			"venue_id": b.VenueID,
			"order_id": rec.ID,
		}).Errorf("rejected order record: %v", err)
		return kitchen.IngestIgnored
	}
	metrics.KitchenIngest.WithLabelValues(string(action)).Inc()
	return action
}

// withUnsent lays a patch still waiting in the retrier over a record read from
// the store, so a board opened while a write is failing keeps the earlier
// transition. A terminal record or one newer than the patch wins.
func (b *KitchenBoard) withUnsent(rec kitchen.OrderRecord) kitchen.OrderRecord {
	if b.retrier == nil || !kitchen.OrderStatus(rec.Status).Active() {
		return rec
	}
	patch, ok := b.retrier.Queued(rec.ID)
	if !ok {
		return rec
	}
	if rec.UpdatedAt != nil && !patch.UpdatedAt.After(*rec.UpdatedAt) {
		return rec
	}
	return rec.WithPatch(patch)
}

func (b *KitchenBoard) updateGauge() {
	metrics.OpenTickets.WithLabelValues(b.VenueID).Set(float64(b.seq.Len()))
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, kitchen.ErrNotFound):
		return "not_found"
	case errors.Is(err, kitchen.ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "error"
	}
}
