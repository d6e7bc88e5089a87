package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is the context value key the repositories and services read
// the correlation id from.
const RequestIDKey = "request_id"

// fiberRequestIDLocal is where the request-id middleware stashes the id on
// the fiber context.
const fiberRequestIDLocal = "X-Request-ID"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

// FromFiberCtx lifts the request id out of the fiber request into a plain
// context.Context, falling back to the inbound header when the middleware
// did not run.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	requestID, ok := c.Locals(fiberRequestIDLocal).(string)
	if !ok || requestID == "" {
		requestID = c.Get(fiberRequestIDLocal)
	}
	if requestID == "" {
		requestID = "unknown"
	}

	return WithRequestID(context.Background(), requestID)
}
