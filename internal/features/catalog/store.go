package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
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

func (s *Store) createOne(ctx context.Context, product *Product) error {
	query := `INSERT INTO products(id, name, quantity, price, farmer) VALUES($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Quantity,
		product.Price,
		product.Farmer,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert new product in catalog store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) findAll(ctx context.Context) ([]*Product, error) {
	query := `SELECT id, name, quantity, price, farmer, created_at, updated_at FROM products ORDER BY created_at`

	return s.queryProducts(ctx, query)
}

func (s *Store) findByFarmer(ctx context.Context, farmer string) ([]*Product, error) {
	query := `SELECT id, name, quantity, price, farmer, created_at, updated_at FROM products WHERE farmer = $1 ORDER BY created_at`

	return s.queryProducts(ctx, query, farmer)
}

// updateOne replaces name, quantity and price of a product owned by farmer.
// Ownership is immutable; a missing or foreign product reports
// [servererrors.ErrNotProductOwner].
func (s *Store) updateOne(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) error {
	query := `UPDATE products
		SET name = $1, quantity = $2, price = $3, updated_at = now()
		WHERE id = $4 AND farmer = $5`

	res, err := s.db.ExecContext(
		ctx,
		query,
		req.Name,
		req.Quantity,
		req.Price,
		productID,
		req.Farmer,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to update product in catalog store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read rows affected in catalog store: %w",
			err,
		)
	}

	if affected == 0 {
		return servererrors.ErrNotProductOwner
	}

	return nil
}

// deleteOne removes a product owned by farmer. Deleting a product that does
// not exist is a no-op; deleting another farmer's product is forbidden.
func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID, farmer string) error {
	query := `DELETE FROM products WHERE id = $1 AND farmer = $2`

	res, err := s.db.ExecContext(ctx, query, productID, farmer)
	if err != nil {
		return fmt.Errorf(
			"failed to delete product in catalog store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read rows affected in catalog store: %w",
			err,
		)
	}

	if affected > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`,
		productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf(
			"failed to check product existence in catalog store: %w",
			err,
		)
	}

	if exists {
		return servererrors.ErrNotProductOwner
	}

	return nil
}

// deleteByID removes a product regardless of owner. Used by the stock
// depletion event handler, never exposed over HTTP.
func (s *Store) deleteByID(ctx context.Context, productID uuid.UUID) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to delete depleted product in catalog store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get products from catalog store: %w",
			err,
		)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		var product Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Quantity,
			&product.Price,
			&product.Farmer,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from catalog store: %w",
				err,
			)
		}

		products = append(products, &product)
	}

	return products, rows.Err()
}
