package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

const defaultNotificationLimit = 50

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications -> notifikasi venue terbaru dulu, ?limit= opsional
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondError(c, http.StatusBadRequest, strconv.ErrSyntax)
			return
		}
		limit = n
	}

	var notifs []models.Notification
	if err := nc.DB.WithContext(c.Request.Context()).
		Where("venue_id = ?", c.Param("venue_id")).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}
