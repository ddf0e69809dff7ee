package database

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aytac78/order-business-app-sub001/models"
	"github.com/aytac78/order-business-app-sub001/utils"
)

// Migrate creates or updates every table the kitchen service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Venue{},
		&models.Order{},
		&models.DBChange{},
		&models.MenuCategory{},
		&models.Notification{},
	); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedVenues inserts the venues given as "id" or "id:name" that do not exist yet.
func SeedVenues(db *gorm.DB, entries []string) error {
	for _, entry := range entries {
		id, name, _ := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" {
			continue
		}
		if name == "" {
			name = id
		}

		var venue models.Venue
		err := db.First(&venue, "id = ?", id).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		venue = models.Venue{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
		if err := db.Create(&venue).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded venue %s (%s)", id, name)
	}
	return nil
}
