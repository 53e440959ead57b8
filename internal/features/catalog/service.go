package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type storer interface {
	createOne(ctx context.Context, product *Product) error
	findAll(ctx context.Context) ([]*Product, error)
	findByFarmer(ctx context.Context, farmer string) ([]*Product, error)
	updateOne(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) error
	deleteOne(ctx context.Context, productID uuid.UUID, farmer string) error
	deleteByID(ctx context.Context, productID uuid.UUID) error
}

type accountFinder interface {
	FindAccount(ctx context.Context, username, role string) (*account.Account, error)
}

type service struct {
	store    storer
	accounts accountFinder
	cache    *ListingCache
}

func NewService(store storer, accounts accountFinder, cache *ListingCache) *service {
	return &service{
		store:    store,
		accounts: accounts,
		cache:    cache,
	}
}

func (s *service) createProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)

	if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
		return nil, servererrors.ErrInvalidPrice
	}

	_, err := s.accounts.FindAccount(ctx, req.Farmer, account.RoleFarmer)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return nil, servererrors.ErrFarmerNotFound
		}

		return nil, err
	}

	product := &Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Farmer:   req.Farmer,
	}

	if err := s.store.createOne(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return product, nil
}

func (s *service) getAllProducts(ctx context.Context) ([]*Product, error) {
	products, err := s.cache.get(ctx)
	if err == nil {
		return products, nil
	}

	if !errors.Is(err, errCacheMiss) {
		log.Printf("listing cache read failed, falling back to db: %v", err)
	}

	products, err = s.store.findAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.set(ctx, products); err != nil {
		log.Printf("failed to populate listing cache: %v", err)
	}

	return products, nil
}

func (s *service) getProductsByFarmer(ctx context.Context, farmer string) ([]*Product, error) {
	return s.store.findByFarmer(ctx, farmer)
}

func (s *service) updateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) error {
	req.Name = strings.TrimSpace(req.Name)

	if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
		return servererrors.ErrInvalidPrice
	}

	if err := s.store.updateOne(ctx, productID, req); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID, farmer string) error {
	if err := s.store.deleteOne(ctx, productID, farmer); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

// removeDepletedProduct drops a listing whose stock reached zero. Called by
// the stock depletion event handler, not by any HTTP route.
func (s *service) removeDepletedProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.store.deleteByID(ctx, productID); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

// InvalidateListing drops the cached product listing. The order feature's
// stock decrement changes listed quantities, so its event handler calls this.
func (s *service) InvalidateListing(ctx context.Context) {
	s.invalidateListing(ctx)
}

func (s *service) invalidateListing(ctx context.Context) {
	if err := s.cache.invalidate(ctx); err != nil {
		log.Printf("failed to invalidate listing cache: %v", err)
	}
}
