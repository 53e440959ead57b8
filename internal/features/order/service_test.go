package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine/event"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type fakeProduct struct {
	name     string
	quantity decimal.Decimal
	price    decimal.Decimal
	farmer   string
}

// fakeOrderStore mimics the row-lock semantics of the real store: the whole
// check-and-decrement runs under one lock.
type fakeOrderStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*fakeProduct
	orders   []*Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		products: make(map[uuid.UUID]*fakeProduct),
	}
}

func (f *fakeOrderStore) createOne(ctx context.Context, order *Order) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, exists := f.products[order.ProductID]
	if !exists {
		return decimal.Decimal{}, servererrors.ErrProductNotFound
	}

	if order.Quantity.GreaterThan(product.quantity) {
		return decimal.Decimal{}, &servererrors.InsufficientStockError{
			Available: product.quantity.String(),
		}
	}

	order.ProductName = product.name
	order.TotalPrice = order.Quantity.Mul(product.price)
	order.FarmerUsername = product.farmer
	order.Status = StatusPending

	product.quantity = product.quantity.Sub(order.Quantity)
	f.orders = append(f.orders, order)

	return product.quantity, nil
}

func (f *fakeOrderStore) findByClient(ctx context.Context, clientUsername string) ([]*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	orders := []*Order{}
	for _, o := range f.orders {
		if o.ClientUsername == clientUsername {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

type fakeAccounts struct {
	known map[string]string // username -> role
}

func (f *fakeAccounts) FindAccount(ctx context.Context, username, role string) (*account.Account, error) {
	if f.known[username] != role {
		return nil, servererrors.ErrUserNotFound
	}

	return &account.Account{Username: username, Role: role}, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*event.Event
}

func (f *fakePublisher) RegisterEvents(eventNames ...event.EventName) {}

func (f *fakePublisher) Publish(e *event.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, e)
	return nil
}

func (f *fakePublisher) eventsNamed(name event.EventName) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, e := range f.published {
		if e.Name == name {
			count++
		}
	}

	return count
}

func seedService(stock, price string) (*service, *fakeOrderStore, *fakePublisher, uuid.UUID) {
	store := newFakeOrderStore()
	productID := uuid.New()
	store.products[productID] = &fakeProduct{
		name:     "Tomatoes",
		quantity: decimal.RequireFromString(stock),
		price:    decimal.RequireFromString(price),
		farmer:   "vidya",
	}

	accounts := &fakeAccounts{
		known: map[string]string{
			"client1": account.RoleClient,
			"vidya":   account.RoleFarmer,
		},
	}

	publisher := &fakePublisher{}
	svc := NewService(store, accounts, publisher)

	return svc, store, publisher, productID
}

func Test_placeOrder(t *testing.T) {
	svc, store, _, productID := seedService("10", "2.5")
	ctx := context.Background()

	newOrder, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("4"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !newOrder.TotalPrice.Equal(decimal.RequireFromString("10.0")) {
		t.Errorf("expected total price 10.0, got %s", newOrder.TotalPrice)
	}

	if newOrder.Status != StatusPending {
		t.Errorf("expected status %q, got %q", StatusPending, newOrder.Status)
	}

	if newOrder.FarmerUsername != "vidya" {
		t.Errorf("expected farmer username to be denormalized onto the order, got %q", newOrder.FarmerUsername)
	}

	remaining := store.products[productID].quantity
	if !remaining.Equal(decimal.RequireFromString("6")) {
		t.Errorf("expected remaining stock 6, got %s", remaining)
	}

	// a follow-up order for more than what is left fails and reports the
	// available amount
	_, err = svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("7"),
	})

	var insufficientStock *servererrors.InsufficientStockError
	if !errors.As(err, &insufficientStock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	if insufficientStock.Available != "6" {
		t.Errorf("expected reported availability 6, got %s", insufficientStock.Available)
	}

	if !store.products[productID].quantity.Equal(decimal.RequireFromString("6")) {
		t.Error("expected a failed order to leave stock unchanged")
	}
}

func Test_placeOrder_totalPriceImmutable(t *testing.T) {
	svc, store, _, productID := seedService("10", "2.5")
	ctx := context.Background()

	newOrder, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("4"),
	})
	if err != nil {
		t.Fatal(err)
	}

	// the farmer later raises the price; the existing order keeps the total
	// computed at purchase time
	store.products[productID].price = decimal.RequireFromString("99")

	orders, err := svc.listClientOrders(ctx, "client1")
	if err != nil {
		t.Fatal(err)
	}

	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	if !orders[0].TotalPrice.Equal(newOrder.TotalPrice) {
		t.Errorf("expected total price to stay %s, got %s", newOrder.TotalPrice, orders[0].TotalPrice)
	}

	if orders[0].ProductName != "Tomatoes" {
		t.Errorf("expected the product name captured at order time, got %q", orders[0].ProductName)
	}
}

func Test_placeOrder_invalidQuantity(t *testing.T) {
	svc, _, _, productID := seedService("10", "2.5")
	ctx := context.Background()

	for _, quantity := range []string{"0", "-3"} {
		_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
			ClientUsername: "client1",
			ProductID:      productID.String(),
			Quantity:       decimal.RequireFromString(quantity),
		})
		if !errors.Is(err, servererrors.ErrInvalidQuantity) {
			t.Errorf("quantity %s: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}

func Test_placeOrder_unknownClientAndProduct(t *testing.T) {
	svc, _, _, productID := seedService("10", "2.5")
	ctx := context.Background()

	_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "ghost",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("1"),
	})
	if !errors.Is(err, servererrors.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}

	// a farmer account is not a client
	_, err = svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "vidya",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("1"),
	})
	if !errors.Is(err, servererrors.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound for a farmer account, got %v", err)
	}

	_, err = svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      uuid.New().String(),
		Quantity:       decimal.RequireFromString("1"),
	})
	if !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

// Test_placeOrder_concurrent drives more concurrent orders than the stock can
// satisfy and checks that successful decrements never jointly exceed it.
func Test_placeOrder_concurrent(t *testing.T) {
	svc, store, _, productID := seedService("10", "1")
	ctx := context.Background()

	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		oversold  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
				ClientUsername: "client1",
				ProductID:      productID.String(),
				Quantity:       decimal.NewFromInt(1),
			})

			mu.Lock()
			defer mu.Unlock()

			var insufficientStock *servererrors.InsufficientStockError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &insufficientStock):
				// expected once stock runs out
			default:
				oversold++
			}
		}()
	}

	wg.Wait()

	if oversold != 0 {
		t.Errorf("expected only success or insufficient stock, got %d other errors", oversold)
	}

	if succeeded != 10 {
		t.Errorf("expected exactly 10 successful orders for stock 10, got %d", succeeded)
	}

	if !store.products[productID].quantity.IsZero() {
		t.Errorf("expected stock to end at 0, got %s", store.products[productID].quantity)
	}
}

func Test_placeOrder_publishesEvents(t *testing.T) {
	svc, _, publisher, productID := seedService("5", "2")
	ctx := context.Background()

	_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("3"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if publisher.eventsNamed(event.OrderPlacedEventName) != 1 {
		t.Error("expected an order placed event after the first order")
	}

	if publisher.eventsNamed(event.StockDepletedEventName) != 0 {
		t.Error("did not expect a stock depleted event while stock remains")
	}

	// drain the rest of the stock
	_, err = svc.placeOrder(ctx, &PlaceOrderRequest{
		ClientUsername: "client1",
		ProductID:      productID.String(),
		Quantity:       decimal.RequireFromString("2"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if publisher.eventsNamed(event.StockDepletedEventName) != 1 {
		t.Error("expected a stock depleted event when stock hits zero")
	}
}
