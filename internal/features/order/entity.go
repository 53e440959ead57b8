package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusPending is the only status an order ever holds here. The field
// anticipates a fulfillment workflow that is out of scope; no transitions
// are implemented.
const StatusPending = "pending"

// Order fixes quantity and total price at creation time and is immutable
// afterwards. ProductName and FarmerUsername are denormalized from the
// product so the record stays meaningful if the product is later deleted.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ClientUsername string          `json:"client_username"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	FarmerUsername string          `json:"farmer_username"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"-"`
}
