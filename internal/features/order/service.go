package order

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine/event"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type storer interface {
	createOne(ctx context.Context, order *Order) (remaining decimal.Decimal, err error)
	findByClient(ctx context.Context, clientUsername string) ([]*Order, error)
}

type accountFinder interface {
	FindAccount(ctx context.Context, username, role string) (*account.Account, error)
}

type service struct {
	store       storer
	accounts    accountFinder
	eventEngine eventengine.RegisterPublisher
}

func NewService(store storer, accounts accountFinder, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:       store,
		accounts:    accounts,
		eventEngine: eventEngine,
	}

	if s.eventEngine != nil {
		// Register the events this service emits before anyone subscribes.
		s.eventEngine.RegisterEvents(
			event.OrderPlacedEventName,
			event.StockDepletedEventName,
		)
	}

	return s
}

func (s *service) placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error) {
	if !req.Quantity.IsPositive() {
		return nil, servererrors.ErrInvalidQuantity
	}

	_, err := s.accounts.FindAccount(ctx, req.ClientUsername, account.RoleClient)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return nil, servererrors.ErrClientNotFound
		}

		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, servererrors.ErrProductNotFound
	}

	newOrder := &Order{
		ID:             uuid.New(),
		ProductID:      productID,
		ClientUsername: req.ClientUsername,
		Quantity:       req.Quantity,
	}

	remaining, err := s.store.createOne(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(newOrder, remaining)

	return newOrder, nil
}

func (s *service) listClientOrders(ctx context.Context, clientUsername string) ([]*Order, error) {
	return s.store.findByClient(ctx, clientUsername)
}

func (s *service) publishOrderEvents(newOrder *Order, remaining decimal.Decimal) {
	if s.eventEngine == nil {
		return
	}

	placedEvent := &event.OrderPlacedEvent{
		OrderID:        newOrder.ID,
		ProductID:      newOrder.ProductID,
		ClientUsername: newOrder.ClientUsername,
		Quantity:       newOrder.Quantity,
		RemainingStock: remaining,
	}

	err := s.eventEngine.Publish(
		&event.Event{
			Name:    placedEvent.GetEventName(),
			Payload: placedEvent,
		},
	)
	if err != nil {
		log.Printf("failed to publish order placed event: %v", err)
	}

	if !remaining.IsZero() {
		return
	}

	depletedEvent := &event.StockDepletedEvent{
		ProductID: newOrder.ProductID,
	}

	err = s.eventEngine.Publish(
		&event.Event{
			Name:    depletedEvent.GetEventName(),
			Payload: depletedEvent,
		},
	)
	if err != nil {
		log.Printf("failed to publish stock depleted event: %v", err)
	}
}
