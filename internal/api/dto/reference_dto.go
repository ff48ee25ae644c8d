package dto

import (
	"time"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreatePriorityRequest payload.
type CreatePriorityRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CategoryResponse wire view.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PriorityResponse wire view.
type PriorityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// FAQRequest payload for create/update.
type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResponse wire view.
type FAQResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFAQResponse maps a domain FAQ.
func NewFAQResponse(faq *domain.FAQ) FAQResponse {
	return FAQResponse{
		ID:        faq.ID,
		Question:  faq.Question,
		Answer:    faq.Answer,
		Active:    faq.Active,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
	}
}
