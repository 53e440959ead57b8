package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// NewPostgresDB opens a connection pool to Postgres, verifies it with a ping
// and makes sure the schema exists.
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		return nil, err
	}

	log.Println("successfully connected to PostgreSQL")

	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('farmer', 'client')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS farmer_profiles (
			username TEXT PRIMARY KEY REFERENCES users (username),
			name TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT '',
			products TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			quantity NUMERIC NOT NULL CHECK (quantity >= 0),
			price NUMERIC NOT NULL CHECK (price > 0),
			farmer TEXT NOT NULL REFERENCES users (username),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// orders deliberately carry no foreign key to products and denormalize
		// the product name: order history must survive product deletion.
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL,
			product_name TEXT NOT NULL,
			client_username TEXT NOT NULL REFERENCES users (username),
			quantity NUMERIC NOT NULL CHECK (quantity > 0),
			total_price NUMERIC NOT NULL,
			farmer_username TEXT NOT NULL REFERENCES users (username),
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}

	return nil
}
