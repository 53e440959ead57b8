package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requests

type PlaceOrderRequest struct {
	ClientUsername string          `json:"-"` // taken from the access token, never the body
	ProductID      string          `json:"product_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// Responses

type PlaceOrderResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}
