package catalog

import (
	"time"
)

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Keywords    []string `json:"keywords" validate:"omitempty,dive,min=1,max=50"`
	PriceCents  int64    `json:"price_cents" validate:"min=0"`
	RatingStars float64  `json:"rating_stars" validate:"omitempty,min=0,max=5"`
	RatingCount int      `json:"rating_count" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Keywords    []string `json:"keywords" validate:"omitempty,dive,min=1,max=50"`
	PriceCents  int64    `json:"price_cents" validate:"min=0"`
	RatingStars float64  `json:"rating_stars" validate:"omitempty,min=0,max=5"`
	RatingCount int      `json:"rating_count" validate:"min=0"`
	IsActive    *bool    `json:"is_active" validate:"required"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	RatingStars float64   `json:"rating_stars"`
	RatingCount int       `json:"rating_count"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
