package event

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	OrderPlacedEventName   EventName = "order.placed"
	StockDepletedEventName EventName = "product.stock.depleted"
)

// OrderPlacedEvent is published by the order service after an order and its
// paired stock decrement have been committed.
type OrderPlacedEvent struct {
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	ClientUsername string
	Quantity       decimal.Decimal
	RemainingStock decimal.Decimal
}

func (e OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}

// StockDepletedEvent is published when an order decrements a product's stock
// to exactly zero.
type StockDepletedEvent struct {
	ProductID uuid.UUID
}

func (e StockDepletedEvent) GetEventName() EventName {
	return StockDepletedEventName
}
