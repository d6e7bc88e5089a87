package catalogHandler

import (
	catalogService "StorefrontGolang/internal/api/catalog/service"
	"StorefrontGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	catalogService catalogService.ICatalogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs catalogService.ICatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		catalogService: cs,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	products := srv.Group("/products")

	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)

	// Back-office catalog management
	products.Post("/", h.middleware.NewAdminKeyMiddleware, h.CreateProduct)
	products.Put("/:id", h.middleware.NewAdminKeyMiddleware, h.UpdateProduct)

	srv.Get("/categories", h.GetCategories)
}
