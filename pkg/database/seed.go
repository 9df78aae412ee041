package database

import (
	"rentora/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed inserts baseline reference data. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	cities := []domain.City{
		{Name: "Hanoi"},
		{Name: "Da Nang"},
		{Name: "Ho Chi Minh City"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error
}
