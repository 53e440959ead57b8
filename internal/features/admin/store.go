package admin

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// resetAll wipes every table. Administrative operation only; the handler
// sits behind the admin key middleware.
func (s *Store) resetAll(ctx context.Context) error {
	query := `TRUNCATE orders, products, farmer_profiles, users`

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf(
			"failed to reset datastore in admin store: %w",
			err,
		)
	}

	return nil
}
