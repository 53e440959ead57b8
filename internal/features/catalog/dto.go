package catalog

import "github.com/shopspring/decimal"

// Requests

type CreateProductRequest struct {
	Farmer   string          `json:"-"` // taken from the access token, never the body
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type UpdateProductRequest struct {
	Farmer   string          `json:"-"`
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
