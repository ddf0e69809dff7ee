package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// Event types
const (
	EventTicketUpdate  = "ticket_update"
	EventTicketRemoved = "ticket_removed"
	EventStaffNotif    = "staff_notification"
	EventSnapshot      = "ticket_snapshot"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	venueID string
	role    string
}

// KDSHub menampung semua client KDS (chef, staff, admin) per venue
type KDSHub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]client),
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected screens for a venue.
func ClientCount(venueID string) int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	n := 0
	for _, c := range kdsHub.clients {
		if c.venueID == venueID {
			n++
		}
	}
	return n
}

// Join registers conn for the venue and writes it the current ticket list.
// The hub lock is held across both so no broadcast slips in between.
func Join(conn *websocket.Conn, venueID, role string, snapshot func() []kitchen.Ticket) error {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(Message{Event: EventSnapshot, Data: snapshot()})
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	kdsHub.clients[conn] = client{venueID: venueID, role: role}
	return nil
}

// BroadcastTicketUpdate -> tiket baru atau berubah
func BroadcastTicketUpdate(venueID string, ticket kitchen.Ticket) {
	broadcast(venueID, Message{
		Event: EventTicketUpdate,
		Data:  ticket,
	})
}

// BroadcastTicketRemoved -> tiket keluar dari layar dapur (served/cancelled)
func BroadcastTicketRemoved(venueID, orderID string) {
	broadcast(venueID, Message{
		Event: EventTicketRemoved,
		Data:  map[string]string{"order_id": orderID},
	})
}

// BroadcastStaffNotification -> notifikasi untuk staff
func BroadcastStaffNotification(venueID, message string) {
	broadcast(venueID, Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func broadcast(venueID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	sent := 0
	for conn, c := range kdsHub.clients {
		if c.venueID != venueID {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"venue_id": venueID, "role": c.role}).
				Errorf("Error sending message to client: %v", err)
			continue
		}
		sent++
	}
	utils.InfoLogger.WithFields(logrus.Fields{"venue_id": venueID, "event": msg.Event, "clients": sent}).Debug("kds broadcast")
}
