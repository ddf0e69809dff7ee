package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
)

func TestCreateAndListOrders(t *testing.T) {
	app := setupApp(t, nil)
	order := app.createOrder(t, "venue-1")
	assert.Equal(t, "#0001", order["order_number"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "dine_in", order["type"])

	w := app.do(t, "GET", "/venues/venue-1/orders", token(t, "chef", "venue-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []kitchen.OrderRecord
	decode(t, w, &records)
	require.Len(t, records, 1)
	assert.Equal(t, order["id"], records[0].ID)
	assert.Len(t, records[0].Items, 3)

	var changes int64
	app.db.Model(&models.DBChange{}).Count(&changes)
	assert.EqualValues(t, 1, changes)
}

func TestCreateOrderValidation(t *testing.T) {
	app := setupApp(t, nil)
	staff := token(t, "staff", "venue-1")

	w := app.do(t, "POST", "/venues/venue-1/orders", staff, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, "POST", "/venues/venue-1/orders", staff, map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Ayran", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Status)

	w = app.do(t, "POST", "/venues/venue-1/orders", staff, map[string]interface{}{
		"type":  "drone",
		"items": []map[string]interface{}{{"name": "Ayran", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// chef tidak membuat order
	w = app.do(t, "POST", "/venues/venue-1/orders", token(t, "chef", "venue-1"), map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Ayran", "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOrderUnknownVenue(t *testing.T) {
	app := setupApp(t, nil)
	w := app.do(t, "POST", "/venues/nowhere/orders", token(t, "admin", ""), map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Ayran", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelOrder(t *testing.T) {
	app := setupApp(t, nil)
	orderID := app.createOrder(t, "venue-1")["id"].(string)
	staff := token(t, "staff", "venue-1")

	w := app.do(t, "POST", "/venues/venue-1/orders/"+orderID+"/cancel", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, "POST", "/venues/venue-1/orders/"+orderID+"/cancel", staff, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, "GET", "/venues/venue-1/kitchen/tickets", staff, nil)
	var tickets []kitchen.Ticket
	decode(t, w, &tickets)
	assert.Empty(t, tickets)

	w = app.do(t, "POST", "/venues/venue-1/orders/missing/cancel", staff, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
