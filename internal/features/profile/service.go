package profile

import (
	"context"
	"strings"
)

type storer interface {
	findByUsername(ctx context.Context, username string) (*Profile, error)
	updateOne(ctx context.Context, username string, req *UpdateProfileRequest) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) getProfile(ctx context.Context, username string) (*Profile, error) {
	return s.store.findByUsername(ctx, username)
}

func (s *service) updateProfile(ctx context.Context, username string, req *UpdateProfileRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.Contact = strings.TrimSpace(req.Contact)

	return s.store.updateOne(ctx, username, req)
}
