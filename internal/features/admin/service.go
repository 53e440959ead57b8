package admin

import "context"

type storer interface {
	resetAll(ctx context.Context) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) resetDatastore(ctx context.Context) error {
	return s.store.resetAll(ctx)
}
