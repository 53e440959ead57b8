package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne inserts the account and, when withEmptyProfile is set, its empty
// profile row in one transaction so a farmer account never exists without a
// profile.
func (s *Store) createOne(ctx context.Context, account *Account, withEmptyProfile bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	userQuery := `INSERT INTO users(username, password_hash, role) VALUES($1, $2, $3)`

	_, err = tx.ExecContext(
		ctx,
		userQuery,
		account.Username,
		account.PasswordHash,
		account.Role,
	)
	if err != nil {
		tx.Rollback()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return servererrors.ErrUsernameTaken
		}

		return fmt.Errorf(
			"failed to insert new user in account store: %w",
			err,
		)
	}

	if withEmptyProfile {
		profileQuery := `INSERT INTO farmer_profiles(username) VALUES($1)`

		_, err = tx.ExecContext(
			ctx,
			profileQuery,
			account.Username,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf(
				"failed to insert empty farmer profile in account store: %w",
				err,
			)
		}
	}

	return tx.Commit()
}

func (s *Store) findByUsernameAndRole(ctx context.Context, username, role string) (*Account, error) {
	query := `SELECT username, password_hash, role, created_at FROM users WHERE username = $1 AND role = $2`

	var account Account
	err := s.db.QueryRowContext(ctx, query, username, role).Scan(
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan user from account store: %w",
			err,
		)
	}

	return &account, nil
}

func (s *Store) updatePasswordHash(ctx context.Context, username, role, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE username = $2 AND role = $3`

	res, err := s.db.ExecContext(ctx, query, passwordHash, username, role)
	if err != nil {
		return fmt.Errorf(
			"failed to update password hash in account store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read rows affected in account store: %w",
			err,
		)
	}

	if affected == 0 {
		return servererrors.ErrUserNotFound
	}

	return nil
}
