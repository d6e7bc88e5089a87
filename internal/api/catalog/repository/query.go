package catalogRepository

const (
	queryCreateProduct = `
		INSERT INTO products (
			id, name, category, description, keywords,
			price_cents, rating_stars, rating_count, is_active,
			created_at, updated_at
		) VALUES (
			:id, :name, :category, :description, :keywords,
			:price_cents, :rating_stars, :rating_count, :is_active,
			:created_at, :updated_at
		)
	`

	queryGetProductByID = `
		SELECT
			id, name, category, description, keywords,
			price_cents, rating_stars, rating_count, is_active,
			created_at, updated_at
		FROM products
		WHERE id = :id
	`

	queryGetProductsPage = `
		SELECT
			id, name, category, description, keywords,
			price_cents, rating_stars, rating_count, is_active,
			created_at, updated_at
		FROM products
		WHERE is_active = true
		AND (:category = '' OR LOWER(category) = LOWER(:category))
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountProducts = `
		SELECT COUNT(*)
		FROM products
		WHERE is_active = true
		AND (:category = '' OR LOWER(category) = LOWER(:category))
	`

	queryGetActiveProducts = `
		SELECT
			id, name, category, description, keywords,
			price_cents, rating_stars, rating_count, is_active,
			created_at, updated_at
		FROM products
		WHERE is_active = true
		ORDER BY created_at ASC
	`

	queryGetCategories = `
		SELECT DISTINCT category
		FROM products
		WHERE is_active = true AND category <> ''
		ORDER BY category
	`

	queryUpdateProduct = `
		UPDATE products
		SET
			name = :name,
			category = :category,
			description = :description,
			keywords = :keywords,
			price_cents = :price_cents,
			rating_stars = :rating_stars,
			rating_count = :rating_count,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
)
