package httpdto

import (
	"time"

	"rentora/internal/domain"
)

// PropertyRequest is used for POST and PUT /properties
type PropertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Area        int     `json:"area,omitempty"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    int     `json:"category" binding:"required"`
	Furnish     int     `json:"furnish,omitempty"`
	IsActive    bool    `json:"is_active,omitempty"`
	CityID      int     `json:"city_id" binding:"required"`
}

// PhotoDTO represents a listing photo in API responses.
type PhotoDTO struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// PropertyDTO represents a listing in API responses.
type PropertyDTO struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Price        float64    `json:"price"`
	Area         int        `json:"area,omitempty"`
	Address      string     `json:"address,omitempty"`
	Lat          float64    `json:"lat,omitempty"`
	Lng          float64    `json:"lng,omitempty"`
	Description  string     `json:"description,omitempty"`
	Category     int        `json:"category"`
	Furnish      int        `json:"furnish"`
	IsActive     bool       `json:"is_active"`
	CityID       int        `json:"city_id"`
	City         string     `json:"city,omitempty"`
	PostedBy     int        `json:"posted_by"`
	PostedByName string     `json:"posted_by_name,omitempty"`
	Photos       []PhotoDTO `json:"photos,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// EnumOption is one selectable value of a listing enum.
type EnumOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EnumsResponse lists the selectable listing enums.
type EnumsResponse struct {
	Categories []EnumOption `json:"categories"`
	Furnishes  []EnumOption `json:"furnishes"`
}

func FromPhoto(p domain.Photo) PhotoDTO {
	return PhotoDTO{ID: p.ID, ImageURL: p.ImageURL, IsPrimary: p.IsPrimary}
}

func FromProperty(p domain.Property) PropertyDTO {
	photos := make([]PhotoDTO, len(p.Photos))
	for i, ph := range p.Photos {
		photos[i] = FromPhoto(ph)
	}
	return PropertyDTO{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Area:         p.Area,
		Address:      p.Address,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Description:  p.Description,
		Category:     int(p.Category),
		Furnish:      int(p.Furnish),
		IsActive:     p.IsActive,
		CityID:       p.CityID,
		City:         p.City.Name,
		PostedBy:     p.PostedBy,
		PostedByName: p.User.Name,
		Photos:       photos,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func FromProperties(properties []domain.Property) []PropertyDTO {
	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = FromProperty(p)
	}
	return dtos
}
