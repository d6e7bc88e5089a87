package chatHandler

import (
	chatService "StorefrontGolang/internal/api/chat/service"
	"StorefrontGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chat := srv.Group("/chat")

	chat.Post("/message", h.middleware.NewRateLimiter, h.SendMessage)
	chat.Get("/history", h.GetHistory)
	chat.Get("/suggestions", h.GetSuggestions)

	// Back-office model management
	chat.Post("/train", h.middleware.NewAdminKeyMiddleware, h.Train)
	chat.Post("/products/refresh", h.middleware.NewAdminKeyMiddleware, h.RefreshProducts)
	chat.Get("/export", h.middleware.NewAdminKeyMiddleware, h.Export)
}
