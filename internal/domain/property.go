package domain

import "time"

// Category of a listing.
type Category int

const (
	CategoryRent Category = iota + 1
	CategorySale
)

// Furnish level of a listing.
type Furnish int

const (
	FurnishNone Furnish = iota + 1
	FurnishSemi
	FurnishFull
)

// CategoryLabels maps category values to display names.
var CategoryLabels = map[Category]string{
	CategoryRent: "Rent",
	CategorySale: "Sale",
}

// FurnishLabels maps furnish values to display names.
var FurnishLabels = map[Furnish]string{
	FurnishNone: "None",
	FurnishSemi: "Semi",
	FurnishFull: "Full",
}

// Property represents the properties table
type Property struct {
	ID          int     `gorm:"primaryKey"`
	Title       string  `gorm:"size:200;not null"`
	Price       float64 `gorm:"not null"`
	Area        int
	Address     string
	Lat         float64
	Lng         float64
	Description string
	Category    Category `gorm:"default:1"`
	Furnish     Furnish  `gorm:"default:1"`
	IsActive    bool     `gorm:"default:false"`
	CityID      int      `gorm:"index;not null"`
	PostedBy    int      `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	City      City       `gorm:"foreignKey:CityID"`
	User      User       `gorm:"foreignKey:PostedBy"`
	Bookmarks []Bookmark `gorm:"foreignKey:PropertyID"`
	Photos    []Photo    `gorm:"foreignKey:PropertyID"`
}

// Photo is an uploaded listing image stored in object storage.
type Photo struct {
	ID         int    `gorm:"primaryKey"`
	PublicID   string `gorm:"size:255;uniqueIndex;not null"`
	ImageURL   string `gorm:"not null"`
	IsPrimary  bool   `gorm:"default:false"`
	PropertyID int    `gorm:"index;not null"`
}

// Bookmark marks a property saved by a user.
type Bookmark struct {
	UserID     int `gorm:"primaryKey"`
	PropertyID int `gorm:"primaryKey"`
}
