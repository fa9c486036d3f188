package seeders

import (
	"github.com/shashiranjanraj/mithai/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("sweets", SeedSweets)
}

// SeedSweets inserts a small demo catalogue. Idempotent: it skips seeding
// when any sweets already exist.
func SeedSweets(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Sweet{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sweets := []models.Sweet{
		{Name: "Kaju Katli", Category: "Barfi", Price: 4.50, Quantity: 40},
		{Name: "Gulab Jamun", Category: "Syrup", Price: 2.00, Quantity: 60},
		{Name: "Super Sour Candy", Category: "Candy", Price: 0.75, Quantity: 120},
		{Name: "KitKat", Category: "Wafer", Price: 1.00, Quantity: 10},
		{Name: "Chocolate", Category: "Bar", Price: 1.25, Quantity: 80},
	}
	return db.Create(&sweets).Error
}
