package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/services"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// OrderController is the POS side: orders enter the kitchen queue through it.
type OrderController struct {
	Store *services.GormOrderStore
}

func NewOrderController(store *services.GormOrderStore) *OrderController {
	return &OrderController{Store: store}
}

// CreateOrder -> POS mengirim order baru ke dapur (status='pending')
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body services.NewOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Store.CreateOrder(c.Request.Context(), c.Param("venue_id"), body)
	if err != nil {
		respondKitchenError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetActiveOrders -> order aktif venue dalam bentuk record store
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	records, err := oc.Store.ListActiveOrders(c.Request.Context(), c.Param("venue_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", records)
}

// CancelOrder -> order dibatalkan dari lantai, dapur menerima lewat change feed
func (oc *OrderController) CancelOrder(c *gin.Context) {
	order, err := oc.Store.SetStatus(c.Request.Context(), c.Param("venue_id"), c.Param("order_id"), kitchen.OrderCancelled)
	if err != nil {
		respondKitchenError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
