package entity

import (
	"time"
)

type ChatMessage struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	Intent      string    `json:"intent"`
	Confidence  float64   `json:"confidence"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"created_at"`
}
