package account

import (
	"context"
	"errors"
	"strings"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type storer interface {
	createOne(ctx context.Context, account *Account, withEmptyProfile bool) error
	findByUsernameAndRole(ctx context.Context, username, role string) (*Account, error)
	updatePasswordHash(ctx context.Context, username, role, passwordHash string) error
}

type tokenIssuer interface {
	GenerateAccessToken(username, role string) (string, error)
}

type service struct {
	store       storer
	tokenIssuer tokenIssuer
}

func NewService(store storer, tokenIssuer tokenIssuer) *service {
	return &service{
		store:       store,
		tokenIssuer: tokenIssuer,
	}
}

func (s *service) registerAccount(ctx context.Context, req *RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)

	// a whitespace-only username survives the handler's required check
	if req.Username == "" {
		return servererrors.ErrAllFieldsRequired
	}

	if !ValidRole(req.Role) {
		return servererrors.ErrInvalidRole
	}

	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(req.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return err
	}

	// farmers must be retrievable through their profile from the moment
	// they register
	return s.store.createOne(
		ctx,
		&Account{
			Username:     req.Username,
			PasswordHash: string(passwordHash),
			Role:         req.Role,
		},
		req.Role == RoleFarmer,
	)
}

func (s *service) login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	account, err := s.store.findByUsernameAndRole(ctx, req.Username, req.Role)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return nil, servererrors.ErrInvalidCredentials
		}

		return nil, err
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(account.PasswordHash),
		[]byte(req.Password),
	)
	if err != nil {
		return nil, servererrors.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.GenerateAccessToken(account.Username, account.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Username: account.Username,
		Role:     account.Role,
		Token:    token,
	}, nil
}

// FindAccount looks up the account registered under username with the given
// role. Other features use it to resolve farmer and client identifiers.
func (s *service) FindAccount(ctx context.Context, username, role string) (*Account, error) {
	return s.store.findByUsernameAndRole(ctx, username, role)
}

func (s *service) resetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if !ValidRole(req.Role) {
		return servererrors.ErrInvalidRole
	}

	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(req.NewPassword),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return err
	}

	return s.store.updatePasswordHash(
		ctx,
		req.Username,
		req.Role,
		string(passwordHash),
	)
}
