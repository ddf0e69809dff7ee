package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/aytac78/order-business-app-sub001/kds"
	"github.com/aytac78/order-business-app-sub001/middlewares"
	"github.com/aytac78/order-business-app-sub001/services"
	"github.com/aytac78/order-business-app-sub001/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return middlewares.OriginAllowed(r.Header.Get("Origin"))
	},
}

type KDSController struct {
	Kitchen *services.KitchenService
}

func NewKDSController(ks *services.KitchenService) *KDSController {
	return &KDSController{Kitchen: ks}
}

// KDSHandler -> endpoint WebSocket layar dapur. Board venue tetap terbuka
// selama koneksi masih hidup.
func (kc *KDSController) KDSHandler(c *gin.Context) {
	role := c.GetString("role")
	if role != "chef" && role != "staff" && role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		c.Abort()
		return
	}
	venueID := c.Param("venue_id")
	if tokenVenue := c.GetString("venue_id"); tokenVenue != venueID && !(role == "admin" && tokenVenue == "") {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		c.Abort()
		return
	}

	board, err := kc.Kitchen.Acquire(c.Request.Context(), venueID)
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	defer kc.Kitchen.Release(venueID)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	log := utils.InfoLogger.WithFields(logrus.Fields{"venue_id": venueID, "role": role})
	if err := kds.Join(ws, venueID, role, board.Tickets); err != nil {
		utils.ErrorLogger.Printf("kds join for venue %s failed: %v", venueID, err)
		ws.Close()
		return
	}
	log.Info("kds client connected")

	// Layar tidak mengirim perintah; baca hanya untuk mendeteksi disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
	log.Info("kds client disconnected")
}
