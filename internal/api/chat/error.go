package chat

import "StorefrontGolang/pkg/response"

var (
	ErrEmptyMessage    = response.NewError(400, "message cannot be empty")
	ErrSessionNotFound = response.NewError(404, "chat session not found")
	ErrNoTrainingTurns = response.NewError(400, "no training turns provided")
)
