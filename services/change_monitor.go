package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

type subscriber struct {
	venueID  string
	onChange func(OrderEvent)
}

// ChangeMonitor polls the db_changes log and pushes order events to the
// subscribers of each venue. Delivery is at-least-once, from a single goroutine.
type ChangeMonitor struct {
	DB        *gorm.DB
	StopChan  chan struct{}
	Interval  time.Duration
	BatchSize int
	Retention time.Duration

	mu          sync.Mutex
	cursor      uint
	subscribers map[string]subscriber

	pollMu   sync.Mutex
	stopOnce sync.Once
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:          db,
		StopChan:    make(chan struct{}),
		Interval:    1 * time.Second,
		BatchSize:   100,
		Retention:   24 * time.Hour,
		subscribers: make(map[string]subscriber),
	}
}

// Start skips the existing backlog and begins polling.
func (cm *ChangeMonitor) Start() {
	if err := cm.SeekLatest(context.Background()); err != nil {
		utils.ErrorLogger.Printf("change monitor: cannot read latest change id: %v", err)
	}

	if cm.Interval <= 0 {
		cm.Interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()
		pruneTicker := time.NewTicker(time.Hour)
		defer pruneTicker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := cm.Poll(context.Background()); err != nil {
					utils.ErrorLogger.Printf("change monitor: poll failed: %v", err)
				}
			case <-pruneTicker.C:
				if err := cm.Prune(context.Background()); err != nil {
					utils.ErrorLogger.Printf("change monitor: prune failed: %v", err)
				}
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	cm.stopOnce.Do(func() { close(cm.StopChan) })
}

// Subscribe registers onChange for orders of venueID and returns its handle.
func (cm *ChangeMonitor) Subscribe(venueID string, onChange func(OrderEvent)) (string, error) {
	handle := uuid.NewString()
	cm.mu.Lock()
	cm.subscribers[handle] = subscriber{venueID: venueID, onChange: onChange}
	cm.mu.Unlock()
	utils.InfoLogger.WithFields(logrus.Fields{"venue_id": venueID, "handle": handle}).Info("change feed subscribed")
	return handle, nil
}

func (cm *ChangeMonitor) Unsubscribe(handle string) {
	cm.mu.Lock()
	sub, ok := cm.subscribers[handle]
	delete(cm.subscribers, handle)
	cm.mu.Unlock()
	if ok {
		utils.InfoLogger.WithFields(logrus.Fields{"venue_id": sub.venueID, "handle": handle}).Info("change feed unsubscribed")
	}
}

// SeekLatest moves the cursor past every change already in the log.
func (cm *ChangeMonitor) SeekLatest(ctx context.Context) error {
	var latest uint
	if err := cm.DB.WithContext(ctx).Model(&models.DBChange{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&latest).Error; err != nil {
		return err
	}
	cm.mu.Lock()
	cm.cursor = latest
	cm.mu.Unlock()
	return nil
}

// Poll delivers one batch of order changes past the cursor.
func (cm *ChangeMonitor) Poll(ctx context.Context) error {
	cm.pollMu.Lock()
	defer cm.pollMu.Unlock()

	cm.mu.Lock()
	cursor := cm.cursor
	cm.mu.Unlock()

	var changes []models.DBChange
	if err := cm.DB.WithContext(ctx).
		Where("id > ? AND table_name = ?", cursor, "orders").
		Order("id asc").
		Limit(cm.BatchSize).
		Find(&changes).Error; err != nil {
		return err
	}

	for _, change := range changes {
		cm.processOrderChange(ctx, change)
		cm.mu.Lock()
		cm.cursor = change.ID
		cm.mu.Unlock()
	}

	if len(changes) > 0 {
		utils.InfoLogger.Debugf("change monitor: processed %d changes", len(changes))
	}
	return nil
}

// Prune deletes log rows older than Retention.
func (cm *ChangeMonitor) Prune(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-cm.Retention)
	return cm.DB.WithContext(ctx).Where("changed_at < ?", cutoff).Delete(&models.DBChange{}).Error
}

func (cm *ChangeMonitor) processOrderChange(ctx context.Context, change models.DBChange) {
	subs := cm.venueSubscribers(change.VenueID)
	if len(subs) == 0 {
		return
	}

	event := OrderEvent{Action: change.ActionType, VenueID: change.VenueID}
	if change.ActionType == models.ActionDelete {
		// Row sudah tidak ada, perlakukan seperti cancelled supaya keluar dari working set.
		event.Record = kitchen.OrderRecord{ID: change.RecordID, Status: string(kitchen.OrderCancelled)}
	} else {
		var order models.Order
		if err := cm.DB.WithContext(ctx).First(&order, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("change monitor: error fetching order %s: %v", change.RecordID, err)
			return
		}
		event.Record = order.Record()
	}

	for _, sub := range subs {
		sub.onChange(event)
	}
}

func (cm *ChangeMonitor) venueSubscribers(venueID string) []subscriber {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	var out []subscriber
	for _, s := range cm.subscribers {
		if s.venueID == venueID {
			out = append(out, s)
		}
	}
	return out
}
