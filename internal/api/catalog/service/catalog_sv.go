package catalogService

import (
	"StorefrontGolang/internal/api/catalog"
	"StorefrontGolang/internal/entity"
	contextPkg "StorefrontGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *catalogService) ListProducts(ctx context.Context, page, limit int, category string) (*catalog.ProductListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	products, total, err := repo.Products.GetProductsPage(ctx, category, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list products")
		return nil, err
	}

	responses := make([]catalog.ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}

	return &catalog.ProductListResponse{
		Products: responses,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*catalog.ProductResponse, error) {
	if id == "" {
		return nil, catalog.ErrInvalidProductID
	}

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	product, err := repo.Products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}

	response := toProductResponse(product)
	return &response, nil
}

func (s *catalogService) GetCategories(ctx context.Context) (*catalog.CategoryListResponse, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	categories, err := repo.Products.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &catalog.CategoryListResponse{Categories: categories}, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*catalog.ProductResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepo.NewClient(true)
	if err != nil {
		return nil, err
	}
	defer repo.Rollback()

	productID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := entity.Product{
		ID:          productID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Keywords:    req.Keywords,
		PriceCents:  req.PriceCents,
		RatingStars: req.RatingStars,
		RatingCount: req.RatingCount,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Products.CreateProduct(ctx, product); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create product")
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"product_id": productID,
	}).Info("Product created")

	response := toProductResponse(product)
	return &response, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, req catalog.UpdateProductRequest) (*catalog.ProductResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if id == "" {
		return nil, catalog.ErrInvalidProductID
	}

	repo, err := s.catalogRepo.NewClient(true)
	if err != nil {
		return nil, err
	}
	defer repo.Rollback()

	existing, err := repo.Products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Description = req.Description
	existing.Keywords = req.Keywords
	existing.PriceCents = req.PriceCents
	existing.RatingStars = req.RatingStars
	existing.RatingCount = req.RatingCount
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Products.UpdateProduct(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"product_id": id,
	}).Info("Product updated")

	response := toProductResponse(existing)
	return &response, nil
}

func (s *catalogService) ActiveSnapshot(ctx context.Context) ([]entity.Product, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Products.GetActiveProducts(ctx)
}

func toProductResponse(product entity.Product) catalog.ProductResponse {
	return catalog.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Keywords:    product.Keywords,
		PriceCents:  product.PriceCents,
		RatingStars: product.RatingStars,
		RatingCount: product.RatingCount,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
