package entity

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	PriceCents  int64     `json:"price_cents"`
	RatingStars float64   `json:"rating_stars"`
	RatingCount int       `json:"rating_count"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
