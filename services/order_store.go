package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// OrderEvent is a change notification for one order row.
type OrderEvent struct {
	Action  string
	VenueID string
	Record  kitchen.OrderRecord
}

// VenueOrderStore is the boundary the kitchen boards read from and write to.
type VenueOrderStore interface {
	ListActiveOrders(ctx context.Context, venueID string) ([]kitchen.OrderRecord, error)
	Subscribe(venueID string, onChange func(OrderEvent)) (string, error)
	UpdateOrder(ctx context.Context, orderID string, patch kitchen.Patch) error
	Unsubscribe(handle string)
}

// GormOrderStore keeps orders in the relational database and publishes
// changes through the db_changes log read by ChangeMonitor.
type GormOrderStore struct {
	DB      *gorm.DB
	Monitor *ChangeMonitor
}

func NewGormOrderStore(db *gorm.DB, monitor *ChangeMonitor) *GormOrderStore {
	return &GormOrderStore{DB: db, Monitor: monitor}
}

// NewOrderInput is what the POS submits for a new kitchen order.
type NewOrderInput struct {
	OrderNumber string               `json:"order_number"`
	TableNumber *string              `json:"table_number"`
	Type        string               `json:"type"`
	Items       []kitchen.ItemRecord `json:"items" binding:"required"`
}

func activeStatusValues() []string {
	out := make([]string, 0, len(kitchen.ActiveStatuses))
	for _, s := range kitchen.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// ListActiveOrders -> order venue dengan status aktif, urut created_at asc
func (s *GormOrderStore) ListActiveOrders(ctx context.Context, venueID string) ([]kitchen.OrderRecord, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Where("venue_id = ? AND status IN ?", venueID, activeStatusValues()).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	records := make([]kitchen.OrderRecord, 0, len(orders))
	for i := range orders {
		records = append(records, orders[i].Record())
	}
	return records, nil
}

// CreateOrder validates and stores a new order in pending state.
func (s *GormOrderStore) CreateOrder(ctx context.Context, venueID string, in NewOrderInput) (models.Order, error) {
	now := time.Now().UTC()
	items := make([]kitchen.ItemRecord, 0, len(in.Items))
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" {
			return models.Order{}, fmt.Errorf("%w: item name is required", kitchen.ErrValidation)
		}
		if strings.TrimSpace(it.ID) == "" {
			it.ID = uuid.NewString()
		}
		it.Status = string(kitchen.ItemPending)
		items = append(items, it)
	}
	if in.Type == "" {
		in.Type = string(kitchen.OrderDineIn)
	}

	order := models.Order{
		ID:          uuid.NewString(),
		VenueID:     venueID,
		OrderNumber: in.OrderNumber,
		TableNumber: in.TableNumber,
		Type:        in.Type,
		Status:      string(kitchen.OrderPending),
		Items:       models.OrderItemsFromRecords(items),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := order.Record().Validate(); err != nil {
		return models.Order{}, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, "id = ?", venueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("venue %s: %w", venueID, kitchen.ErrNotFound)
			}
			return err
		}
		if order.OrderNumber == "" {
			var count int64
			if err := tx.Model(&models.Order{}).Where("venue_id = ?", venueID).Count(&count).Error; err != nil {
				return err
			}
			order.OrderNumber = fmt.Sprintf("#%04d", count+1)
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return recordChange(tx, order, models.ActionInsert)
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateOrder applies a kitchen patch. A patch stamped before the stored row's
// updated_at arrived late and is skipped; the row already holds newer state.
func (s *GormOrderStore) UpdateOrder(ctx context.Context, orderID string, patch kitchen.Patch) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOrder(tx, orderID)
		if err != nil {
			return err
		}
		if !patch.UpdatedAt.IsZero() && patch.UpdatedAt.Before(order.UpdatedAt) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"order_id":   orderID,
				"patch_at":   patch.UpdatedAt,
				"updated_at": order.UpdatedAt,
			}).Info("skipping order patch older than the stored row")
			return nil
		}
		if patch.Items != nil {
			order.Items = models.OrderItemsFromRecords(patch.Items)
		}
		if patch.Status != nil {
			order.Status = string(*patch.Status)
		}
		order.UpdatedAt = patch.UpdatedAt
		if order.UpdatedAt.IsZero() {
			order.UpdatedAt = time.Now().UTC()
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return recordChange(tx, order, models.ActionUpdate)
	})
}

// SetStatus changes only the order status, e.g. a cancellation from the floor.
// An order of another venue is reported as not found.
func (s *GormOrderStore) SetStatus(ctx context.Context, venueID, orderID string, status kitchen.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", kitchen.ErrValidation, status)
	}
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = findOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.VenueID != venueID {
			return fmt.Errorf("order %s: %w", orderID, kitchen.ErrNotFound)
		}
		if !kitchen.OrderStatus(order.Status).Active() {
			return fmt.Errorf("%w: order %s is already %s", kitchen.ErrInvalidTransition, orderID, order.Status)
		}
		order.Status = string(status)
		order.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return recordChange(tx, order, models.ActionUpdate)
	})
	return order, err
}

func (s *GormOrderStore) Subscribe(venueID string, onChange func(OrderEvent)) (string, error) {
	if s.Monitor == nil {
		return "", errors.New("order store has no change monitor")
	}
	return s.Monitor.Subscribe(venueID, onChange)
}

func (s *GormOrderStore) Unsubscribe(handle string) {
	if s.Monitor != nil {
		s.Monitor.Unsubscribe(handle)
	}
}

func findOrder(tx *gorm.DB, orderID string) (models.Order, error) {
	var order models.Order
	if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, fmt.Errorf("order %s: %w", orderID, kitchen.ErrNotFound)
		}
		return order, err
	}
	return order, nil
}

func recordChange(tx *gorm.DB, order models.Order, action string) error {
	return tx.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		VenueID:    order.VenueID,
		ActionType: action,
		ChangedAt:  time.Now().UTC(),
	}).Error
}
