package catalogRepository

import (
	"StorefrontGolang/internal/entity"
	contextPkg "StorefrontGolang/pkg/context"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type productRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type ProductDB struct {
	ID          sql.NullString  `db:"id"`
	Name        sql.NullString  `db:"name"`
	Category    sql.NullString  `db:"category"`
	Description sql.NullString  `db:"description"`
	Keywords    sql.NullString  `db:"keywords"`
	PriceCents  sql.NullInt64   `db:"price_cents"`
	RatingStars sql.NullFloat64 `db:"rating_stars"`
	RatingCount sql.NullInt64   `db:"rating_count"`
	IsActive    sql.NullBool    `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *productRepository) CreateProduct(ctx context.Context, product entity.Product) error {
	requestID := contextPkg.GetRequestID(ctx)

	keywordsJSON, err := json.Marshal(product.Keywords)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal keywords")
		return err
	}

	argsKV := map[string]interface{}{
		"id":           product.ID,
		"name":         product.Name,
		"category":     product.Category,
		"description":  product.Description,
		"keywords":     string(keywordsJSON),
		"price_cents":  product.PriceCents,
		"rating_stars": product.RatingStars,
		"rating_count": product.RatingCount,
		"is_active":    product.IsActive,
		"created_at":   product.CreatedAt,
		"updated_at":   product.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateProduct, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to insert product")
		return err
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetProductByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Product{}, err
	}
	query = r.q.Rebind(query)

	var row ProductDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, sql.ErrNoRows
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch product")
		return entity.Product{}, err
	}

	return r.toEntity(row), nil
}

func (r *productRepository) GetProductsPage(ctx context.Context, category string, limit, offset int) ([]entity.Product, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"category": category,
		"limit":    limit,
		"offset":   offset,
	}

	query, args, err := sqlx.Named(queryGetProductsPage, argsKV)
	if err != nil {
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ProductDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list products")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountProducts, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, r.toEntity(row))
	}

	return products, total, nil
}

func (r *productRepository) GetActiveProducts(ctx context.Context) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var rows []ProductDB
	if err := r.q.SelectContext(ctx, &rows, queryGetActiveProducts); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch active products")
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, r.toEntity(row))
	}

	return products, nil
}

func (r *productRepository) GetCategories(ctx context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var categories []string
	if err := r.q.SelectContext(ctx, &categories, queryGetCategories); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch categories")
		return nil, err
	}

	return categories, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product entity.Product) error {
	requestID := contextPkg.GetRequestID(ctx)

	keywordsJSON, err := json.Marshal(product.Keywords)
	if err != nil {
		return err
	}

	argsKV := map[string]interface{}{
		"id":           product.ID,
		"name":         product.Name,
		"category":     product.Category,
		"description":  product.Description,
		"keywords":     string(keywordsJSON),
		"price_cents":  product.PriceCents,
		"rating_stars": product.RatingStars,
		"rating_count": product.RatingCount,
		"is_active":    product.IsActive,
		"updated_at":   product.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateProduct, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update product")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) toEntity(row ProductDB) entity.Product {
	var keywords []string
	if row.Keywords.Valid && row.Keywords.String != "" {
		if err := json.Unmarshal([]byte(row.Keywords.String), &keywords); err != nil {
			r.log.WithFields(logrus.Fields{
				"product_id": row.ID.String,
				"error":      err.Error(),
			}).Warn("Failed to unmarshal product keywords")
		}
	}

	return entity.Product{
		ID:          row.ID.String,
		Name:        row.Name.String,
		Category:    row.Category.String,
		Description: row.Description.String,
		Keywords:    keywords,
		PriceCents:  row.PriceCents.Int64,
		RatingStars: row.RatingStars.Float64,
		RatingCount: int(row.RatingCount.Int64),
		IsActive:    row.IsActive.Bool,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
