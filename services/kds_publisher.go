package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/kds"
	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// KDSPublisher pushes board changes to the venue's websocket clients and
// stores a staff notification whenever an order becomes ready.
type KDSPublisher struct {
	DB *gorm.DB
}

func NewKDSPublisher(db *gorm.DB) *KDSPublisher {
	return &KDSPublisher{DB: db}
}

func (p *KDSPublisher) TicketChanged(venueID string, ticket kitchen.Ticket) {
	kds.BroadcastTicketUpdate(venueID, ticket)
}

func (p *KDSPublisher) TicketRemoved(venueID, orderID string) {
	kds.BroadcastTicketRemoved(venueID, orderID)
}

func (p *KDSPublisher) OrderReady(venueID string, order kitchen.Order) {
	message := fmt.Sprintf("Order %s is ready to serve", order.OrderNumber)
	if order.TableNumber != nil {
		message = fmt.Sprintf("Order %s for table %s is ready to serve", order.OrderNumber, *order.TableNumber)
	}

	title := "Order ready"
	orderID := order.ID
	notif := models.Notification{
		VenueID:   venueID,
		OrderID:   &orderID,
		Title:     &title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if p.DB != nil {
		if err := p.DB.Create(&notif).Error; err != nil {
			utils.ErrorLogger.Printf("Error saving notification for order %s: %v", order.ID, err)
		}
	}

	kds.BroadcastStaffNotification(venueID, message)
}
