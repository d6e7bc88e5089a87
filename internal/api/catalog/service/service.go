package catalogService

import (
	"StorefrontGolang/internal/api/catalog"
	catalogRepository "StorefrontGolang/internal/api/catalog/repository"
	"StorefrontGolang/internal/entity"
	"StorefrontGolang/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ICatalogService interface {
	ListProducts(ctx context.Context, page, limit int, category string) (*catalog.ProductListResponse, error)
	GetProduct(ctx context.Context, id string) (*catalog.ProductResponse, error)
	GetCategories(ctx context.Context) (*catalog.CategoryListResponse, error)
	CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*catalog.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req catalog.UpdateProductRequest) (*catalog.ProductResponse, error)

	// ActiveSnapshot supplies the chatbot with the current read-only
	// product snapshot.
	ActiveSnapshot(ctx context.Context) ([]entity.Product, error)
}

type catalogService struct {
	log         *logrus.Logger
	catalogRepo catalogRepository.Repository
	utils       utils.IUtils
}

func NewCatalogService(
	log *logrus.Logger,
	catalogRepo catalogRepository.Repository,
	utils utils.IUtils,
) ICatalogService {
	return &catalogService{
		log:         log,
		catalogRepo: catalogRepo,
		utils:       utils,
	}
}
