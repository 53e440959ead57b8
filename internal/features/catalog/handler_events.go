package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.catalog"

type servicerEvent interface {
	removeDepletedProduct(ctx context.Context, productID uuid.UUID) error
	InvalidateListing(ctx context.Context)
}

type HandlerEventsConfig struct {
	DoneCh            <-chan struct{}
	InternalSrvWG     *sync.WaitGroup
	EventEngine       eventengine.SubscribeRegisterPublisher
	Service           servicerEvent
	DeleteOnZeroStock bool
	AddressChSize     uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG', 'EventEngine' or 'Service' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	// subscribe to events
	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine will
	// close the addressCh
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		case *event.StockDepletedEvent:
			h.stockDepletedEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

// orderPlacedEventHandler drops the cached listing because the order's stock
// decrement changed a listed quantity.
func (h *handlerEvents) orderPlacedEventHandler(newEvent *event.OrderPlacedEvent) {
	ctx := context.TODO()

	h.Service.InvalidateListing(ctx)
}

func (h *handlerEvents) stockDepletedEventHandler(newEvent *event.StockDepletedEvent) {
	if !h.DeleteOnZeroStock {
		return
	}

	ctx := context.TODO()

	err := h.Service.removeDepletedProduct(ctx, newEvent.ProductID)
	if err != nil {
		log.Printf(
			"failed to remove depleted product %s: %v",
			newEvent.ProductID,
			err,
		)
	}
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to each
// event with this handler's addressCh.
func (h *handlerEvents) addSubscriptions() {
	// subscribeToEventNames is an array of all events this subscriber
	// wants to Subscribe to.
	subscribeToEventNames := [2]event.EventName{
		event.OrderPlacedEventName,
		event.StockDepletedEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
