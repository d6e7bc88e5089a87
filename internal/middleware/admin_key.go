package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	AdminKeyHeader = "X-Admin-Key"
	AdminKeyEnv    = "ADMIN_API_KEY"
)

type adminKeyMiddleware struct {
}

func newAdminKeyMiddleware() *adminKeyMiddleware {
	return &adminKeyMiddleware{}
}

// NewAdminKeyMiddleware guards back-office routes with a static API key.
// An unset ADMIN_API_KEY disables the admin surface entirely.
func (m *middleware) NewAdminKeyMiddleware(ctx *fiber.Ctx) error {
	expected := os.Getenv(AdminKeyEnv)
	provided := ctx.Get(AdminKeyHeader)

	if expected == "" {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("Admin endpoint hit but ADMIN_API_KEY is not configured")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access is disabled",
		})
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		m.log.WithFields(logrus.Fields{
			"path":      ctx.Path(),
			"client_ip": ctx.IP(),
		}).Warn("Invalid admin key")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return ctx.Next()
}
