package httpdto

import (
	"time"

	"rentora/internal/domain"
)

// ContactRequest is used for POST /contacts
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" binding:"required"`
}

// ContactDTO represents a contact submission in API responses.
type ContactDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func FromContact(c domain.Contact) ContactDTO {
	return ContactDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func FromContacts(contacts []domain.Contact) []ContactDTO {
	dtos := make([]ContactDTO, len(contacts))
	for i, c := range contacts {
		dtos[i] = FromContact(c)
	}
	return dtos
}
