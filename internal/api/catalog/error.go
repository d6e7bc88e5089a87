package catalog

import "StorefrontGolang/pkg/response"

var (
	ErrProductNotFound  = response.NewError(404, "product not found")
	ErrInvalidProductID = response.NewError(400, "invalid product id")
	ErrDuplicateProduct = response.NewError(409, "product already exists")
)
