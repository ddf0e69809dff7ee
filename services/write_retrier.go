package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/metrics"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// OrderWriter is the write half of VenueOrderStore.
type OrderWriter interface {
	UpdateOrder(ctx context.Context, orderID string, patch kitchen.Patch) error
}

// WriteRetrier menyimpan patch yang gagal ditulis dan mencoba lagi secara periodik.
// Per order hanya satu patch yang disimpan: patch terbaru, digabung dengan patch
// lama kalau patch terbaru tidak dibangun di atasnya.
type WriteRetrier struct {
	store         OrderWriter
	queue         map[string]kitchen.Patch
	retryInterval time.Duration
	mutex         sync.Mutex
	writeMu       sync.Mutex
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewWriteRetrier(store OrderWriter, retryInterval time.Duration) *WriteRetrier {
	if retryInterval <= 0 {
		retryInterval = 5 * time.Second
	}
	return &WriteRetrier{
		store:         store,
		queue:         make(map[string]kitchen.Patch),
		retryInterval: retryInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start memulai goroutine retry
func (wr *WriteRetrier) Start() {
	go func() {
		ticker := time.NewTicker(wr.retryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				wr.Flush(context.Background())
			case <-wr.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Order write retrier started")
}

func (wr *WriteRetrier) Stop() {
	wr.stopOnce.Do(func() { close(wr.stopChan) })
}

// Write sends a patch to the store. A patch still queued for the same order is
// sent along with it, merged in when the new patch was built without it. On
// failure the result is queued for retry and the error is returned. Writes and
// retries are serialized so an older queued patch can never land after a newer one.
func (wr *WriteRetrier) Write(ctx context.Context, patch kitchen.Patch) error {
	wr.writeMu.Lock()
	defer wr.writeMu.Unlock()

	wr.mutex.Lock()
	if queued, ok := wr.queue[patch.OrderID]; ok {
		patch = combine(queued, patch)
		delete(wr.queue, patch.OrderID)
		metrics.RetryQueueDepth.Set(float64(len(wr.queue)))
	}
	wr.mutex.Unlock()

	err := wr.store.UpdateOrder(ctx, patch.OrderID, patch)
	if err == nil {
		return nil
	}
	metrics.StoreWriteFailures.Inc()
	if !errors.Is(err, kitchen.ErrNotFound) {
		wr.Enqueue(patch)
	}
	return err
}

// Enqueue queues a patch for retry, combined with any patch already queued
// for the same order.
func (wr *WriteRetrier) Enqueue(patch kitchen.Patch) {
	wr.mutex.Lock()
	defer wr.mutex.Unlock()
	wr.enqueueLocked(patch)
}

func (wr *WriteRetrier) enqueueLocked(patch kitchen.Patch) {
	if queued, ok := wr.queue[patch.OrderID]; ok {
		patch = combine(queued, patch)
	}
	wr.queue[patch.OrderID] = patch
	metrics.RetryQueueDepth.Set(float64(len(wr.queue)))
}

// combine returns the single patch that carries both a and b. The newer one is
// enough when it was built on top of the older; otherwise they are merged.
func combine(a, b kitchen.Patch) kitchen.Patch {
	older, newer := a, b
	if older.UpdatedAt.After(newer.UpdatedAt) {
		older, newer = newer, older
	}
	if newer.BuiltOn(older) {
		return newer
	}
	utils.InfoLogger.WithFields(logrus.Fields{"order_id": newer.OrderID}).Info("merging unsent order patch into a newer one")
	return kitchen.MergePatch(older, newer)
}

// Pending is the number of orders with an unsent patch.
func (wr *WriteRetrier) Pending() int {
	wr.mutex.Lock()
	defer wr.mutex.Unlock()
	return len(wr.queue)
}

// Queued returns the unsent patch of an order, if any.
func (wr *WriteRetrier) Queued(orderID string) (kitchen.Patch, bool) {
	wr.mutex.Lock()
	defer wr.mutex.Unlock()
	patch, ok := wr.queue[orderID]
	return patch, ok
}

// Flush re-sends every queued patch once and returns how many are still queued.
func (wr *WriteRetrier) Flush(ctx context.Context) int {
	wr.writeMu.Lock()
	defer wr.writeMu.Unlock()

	wr.mutex.Lock()
	if len(wr.queue) == 0 {
		wr.mutex.Unlock()
		return 0
	}
	batch := wr.queue
	wr.queue = make(map[string]kitchen.Patch)
	wr.mutex.Unlock()

	utils.InfoLogger.Printf("Retrying %d order writes", len(batch))

	for orderID, patch := range batch {
		err := wr.store.UpdateOrder(ctx, orderID, patch)
		switch {
		case err == nil:
			utils.InfoLogger.WithFields(logrus.Fields{"order_id": orderID}).Info("order write retried successfully")
		case errors.Is(err, kitchen.ErrNotFound):
			// order sudah dihapus di store, tidak ada yang perlu ditulis
			utils.ErrorLogger.WithFields(logrus.Fields{"order_id": orderID}).Errorf("dropping patch for missing order: %v", err)
		default:
			metrics.StoreWriteFailures.Inc()
			utils.ErrorLogger.WithFields(logrus.Fields{"order_id": orderID}).Errorf("order write retry failed: %v", err)
			wr.mutex.Lock()
			wr.enqueueLocked(patch)
			wr.mutex.Unlock()
		}
	}

	wr.mutex.Lock()
	defer wr.mutex.Unlock()
	metrics.RetryQueueDepth.Set(float64(len(wr.queue)))
	return len(wr.queue)
}
