package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// categoryView is a menu category with the kitchen rank its name maps to.
type categoryView struct {
	models.MenuCategory
	kitchen.Classification
}

// GetCategories -> kategori venue beserta urutan masaknya
func (mcc *MenuCategoryController) GetCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := mcc.DB.WithContext(c.Request.Context()).
		Where("venue_id = ?", c.Param("venue_id")).
		Order("name asc").
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView{MenuCategory: cat, Classification: kitchen.ClassifyName(cat.Name)})
	}
	utils.RespondJSON(c, http.StatusOK, "Menu categories", views)
}

// CreateCategory
func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category name is required"))
		return
	}

	venueID := c.Param("venue_id")
	var existing int64
	if err := mcc.DB.WithContext(c.Request.Context()).Model(&models.MenuCategory{}).
		Where("venue_id = ? AND name = ?", venueID, name).
		Count(&existing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("category already exists"))
		return
	}

	now := time.Now().UTC()
	category := models.MenuCategory{
		VenueID:   venueID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := mcc.DB.WithContext(c.Request.Context()).Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", categoryView{
		MenuCategory:   category,
		Classification: kitchen.ClassifyName(category.Name),
	})
}
