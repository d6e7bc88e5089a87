package chat

import (
	"StorefrontGolang/pkg/chatbot"
	"time"
)

type SendMessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type SendMessageResponse struct {
	SessionID   string                 `json:"session_id"`
	Response    string                 `json:"response"`
	Intent      string                 `json:"intent"`
	Confidence  float64                `json:"confidence"`
	Products    []ProductMatchResponse `json:"products"`
	Suggestions []string               `json:"suggestions"`
}

type ProductMatchResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category,omitempty"`
	PriceCents int64   `json:"price_cents"`
	Price      string  `json:"price"`
	Rating     float64 `json:"rating,omitempty"`
	MatchScore int     `json:"match_score"`
}

type ChatMessageResponse struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"user_message"`
	Intent      string    `json:"intent"`
	Confidence  float64   `json:"confidence"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string                `json:"session_id"`
	Messages  []ChatMessageResponse `json:"messages"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	Limit     int                   `json:"limit"`
}

type SuggestionsResponse struct {
	Suggestions []string               `json:"suggestions"`
	Products    []ProductMatchResponse `json:"products"`
}

type TrainingTurnRequest struct {
	UserMessage string  `json:"user_message" validate:"required,max=2000"`
	Intent      string  `json:"intent" validate:"required,max=100"`
	Confidence  float64 `json:"confidence" validate:"min=0,max=1"`
	Response    string  `json:"response" validate:"omitempty,max=4000"`
}

type TrainRequest struct {
	Turns []TrainingTurnRequest `json:"turns" validate:"required,min=1,dive"`
}

type TrainResponse struct {
	PatternsAdded int `json:"patterns_added"`
}

type RefreshProductsResponse struct {
	ProductCount int `json:"product_count"`
}

type ExportResponse struct {
	Export *chatbot.TrainingExport `json:"export"`
}
