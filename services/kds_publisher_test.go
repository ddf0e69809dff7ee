package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
)

func TestKDSPublisherStoresReadyNotification(t *testing.T) {
	db := setupTestDB(t, "venue-1")
	publisher := NewKDSPublisher(db)

	publisher.OrderReady("venue-1", kitchen.Order{ID: "o1", OrderNumber: "#0003", TableNumber: strPtr("12")})
	publisher.OrderReady("venue-1", kitchen.Order{ID: "o2", OrderNumber: "#0004", Type: kitchen.OrderTakeaway})

	var notifs []models.Notification
	require.NoError(t, db.Order("id asc").Find(&notifs).Error)
	require.Len(t, notifs, 2)
	assert.Equal(t, "Order #0003 for table 12 is ready to serve", notifs[0].Message)
	assert.Equal(t, "Order #0004 is ready to serve", notifs[1].Message)
	require.NotNil(t, notifs[0].OrderID)
	assert.Equal(t, "o1", *notifs[0].OrderID)
	assert.Equal(t, "venue-1", notifs[0].VenueID)
}
