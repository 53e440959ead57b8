package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne creates the order and decrements the product's stock in a single
// transaction. The product row is locked with SELECT ... FOR UPDATE so
// concurrent orders against the same product serialize on the row lock and
// can never jointly decrement below zero.
//
// The order arrives with ID, ProductID, ClientUsername and Quantity set;
// ProductName, TotalPrice, FarmerUsername and Status are filled in here from
// the locked row. Returns the stock remaining after the decrement.
func (s *Store) createOne(ctx context.Context, order *Order) (remaining decimal.Decimal, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	lockQuery := `SELECT name, quantity, price, farmer FROM products WHERE id = $1 FOR UPDATE`

	var (
		name      string
		available decimal.Decimal
		price     decimal.Decimal
		farmer    string
	)

	err = tx.QueryRowContext(ctx, lockQuery, order.ProductID).Scan(
		&name,
		&available,
		&price,
		&farmer,
	)
	if err != nil {
		tx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, servererrors.ErrProductNotFound
		}

		return decimal.Decimal{}, fmt.Errorf(
			"failed to lock product row in order store: %w",
			err,
		)
	}

	if order.Quantity.GreaterThan(available) {
		tx.Rollback()
		return decimal.Decimal{}, &servererrors.InsufficientStockError{
			Available: available.String(),
		}
	}

	order.ProductName = name
	order.TotalPrice = order.Quantity.Mul(price)
	order.FarmerUsername = farmer
	order.Status = StatusPending

	insertQuery := `INSERT INTO orders(id, product_id, product_name, client_username, quantity, total_price, farmer_username, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.ExecContext(
		ctx,
		insertQuery,
		order.ID,
		order.ProductID,
		order.ProductName,
		order.ClientUsername,
		order.Quantity,
		order.TotalPrice,
		order.FarmerUsername,
		order.Status,
	)
	if err != nil {
		tx.Rollback()
		return decimal.Decimal{}, fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	remaining = available.Sub(order.Quantity)

	decrementQuery := `UPDATE products SET quantity = $1, updated_at = now() WHERE id = $2`

	_, err = tx.ExecContext(
		ctx,
		decrementQuery,
		remaining,
		order.ProductID,
	)
	if err != nil {
		tx.Rollback()
		return decimal.Decimal{}, fmt.Errorf(
			"failed to decrement product stock in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Decimal{}, fmt.Errorf(
			"failed to commit order transaction in order store: %w",
			err,
		)
	}

	return remaining, nil
}

func (s *Store) findByClient(ctx context.Context, clientUsername string) ([]*Order, error) {
	query := `SELECT id, product_id, product_name, client_username, quantity, total_price,
			farmer_username, status, created_at
		FROM orders
		WHERE client_username = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, clientUsername)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get client orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var o Order
		err := rows.Scan(
			&o.ID,
			&o.ProductID,
			&o.ProductName,
			&o.ClientUsername,
			&o.Quantity,
			&o.TotalPrice,
			&o.FarmerUsername,
			&o.Status,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan client order from order store: %w",
				err,
			)
		}

		orders = append(orders, &o)
	}

	return orders, rows.Err()
}
