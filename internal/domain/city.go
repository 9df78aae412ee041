package domain

import "time"

// City represents the cities table
type City struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Properties []Property `gorm:"foreignKey:CityID"`
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:20"`
	Message   string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
