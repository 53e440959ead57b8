package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (s *Store) findByUsername(ctx context.Context, username string) (*Profile, error) {
	query := `SELECT username, name, location, contact, products, updated_at FROM farmer_profiles WHERE username = $1`

	var profile Profile
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&profile.Username,
		&profile.Name,
		&profile.Location,
		&profile.Contact,
		&profile.Products,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProfileNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan profile from profile store: %w",
			err,
		)
	}

	return &profile, nil
}

func (s *Store) updateOne(ctx context.Context, username string, req *UpdateProfileRequest) error {
	query := `UPDATE farmer_profiles
		SET name = $1, location = $2, contact = $3, products = $4, updated_at = now()
		WHERE username = $5`

	res, err := s.db.ExecContext(
		ctx,
		query,
		req.Name,
		req.Location,
		req.Contact,
		req.Products,
		username,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to update profile in profile store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read rows affected in profile store: %w",
			err,
		)
	}

	if affected == 0 {
		return servererrors.ErrProfileNotFound
	}

	return nil
}
