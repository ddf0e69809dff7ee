package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/services"
	"github.com/aytac78/order-business-app-sub001/utils"
)

type KitchenController struct {
	Kitchen *services.KitchenService
}

func NewKitchenController(ks *services.KitchenService) *KitchenController {
	return &KitchenController{Kitchen: ks}
}

// withBoard holds the venue board for the duration of one request.
func (kc *KitchenController) withBoard(c *gin.Context, fn func(b *services.KitchenBoard)) {
	venueID := c.Param("venue_id")
	board, err := kc.Kitchen.Acquire(c.Request.Context(), venueID)
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	defer kc.Kitchen.Release(venueID)
	fn(board)
}

// GetTickets -> tiket dapur yang masih terbuka, item diurutkan sesuai urutan masak
func (kc *KitchenController) GetTickets(c *gin.Context) {
	kc.withBoard(c, func(b *services.KitchenBoard) {
		utils.RespondJSON(c, http.StatusOK, "Kitchen tickets", b.Tickets())
	})
}

// StartPreparation -> chef mulai memasak semua item order
func (kc *KitchenController) StartPreparation(c *gin.Context) {
	kc.withBoard(c, func(b *services.KitchenBoard) {
		order, err := b.StartPreparation(c.Request.Context(), c.Param("order_id"))
		kc.respond(c, "Order in preparation", order, err)
	})
}

// StartItem -> chef mulai memasak satu item
func (kc *KitchenController) StartItem(c *gin.Context) {
	kc.withBoard(c, func(b *services.KitchenBoard) {
		order, err := b.StartItem(c.Request.Context(), c.Param("order_id"), c.Param("item_id"))
		kc.respond(c, "Item in preparation", order, err)
	})
}

// MarkItemReady -> chef menandai satu item siap
func (kc *KitchenController) MarkItemReady(c *gin.Context) {
	kc.withBoard(c, func(b *services.KitchenBoard) {
		order, err := b.MarkItemReady(c.Request.Context(), c.Param("order_id"), c.Param("item_id"))
		kc.respond(c, "Item ready", order, err)
	})
}

// CompleteOrder -> staff menandai order yang sudah ready sebagai served
func (kc *KitchenController) CompleteOrder(c *gin.Context) {
	kc.withBoard(c, func(b *services.KitchenBoard) {
		order, err := b.CompleteOrder(c.Request.Context(), c.Param("order_id"))
		kc.respond(c, "Order served", order, err)
	})
}

func (kc *KitchenController) respond(c *gin.Context, message string, order kitchen.Order, err error) {
	if err != nil {
		respondKitchenError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, order)
}
