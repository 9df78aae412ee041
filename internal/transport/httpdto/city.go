package httpdto

import "rentora/internal/domain"

// CityRequest is used for POST and PUT /cities
type CityRequest struct {
	Name string `json:"name" binding:"required"`
}

// CityDTO represents a city in API responses.
type CityDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func FromCity(c domain.City) CityDTO {
	return CityDTO{ID: c.ID, Name: c.Name}
}

func FromCities(cities []domain.City) []CityDTO {
	dtos := make([]CityDTO, len(cities))
	for i, c := range cities {
		dtos[i] = FromCity(c)
	}
	return dtos
}
