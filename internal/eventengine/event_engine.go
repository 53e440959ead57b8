package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error // should take in an event, and add to the events map
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []*event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

type eventEngine struct {
	*EventEngineConfig
	eventEngineCh chan *event.Event                // This is what the event engine listens to for events being published.
	events        map[event.EventName]*subscribers // This is where all events are kept, and subscribers whom have subscribed to that event.
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil {
		log.Fatalln("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("either DoneCh or InternalSrvWG is nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	if e.eventEngineCh == nil {
		log.Fatalln("eventEngineCh is nil")
	}

	log.Println("event engine is listening...")

	for { // read until the e.DoneCh is signalled.
		select {
		case <-e.DoneCh:
			close(e.eventEngineCh)
			log.Println("event engine is shutting down")

			for ev := range e.eventEngineCh { // drain pending events
				e.broadcaster(ev)
			}

			e.shutdownSubscribersAddressCh()
			return

		case ev, isOpened := <-e.eventEngineCh:
			if !isOpened {
				log.Println("eventEngineCh is closed")
				return
			}

			e.broadcaster(ev)
		}
	}
}

func (e *eventEngine) broadcaster(event *event.Event) {
	subscribers, exists := e.events[event.Name]
	if !exists {
		log.Printf("event %v not found. check your event handler", event.Name)
		return
	}

	for i, addressCh := range subscribers.addressChs {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
				subscribers.names[i],
			)
			continue
		}

		addressCh <- event.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to, to the
// [eventEngine].
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			log.Println("event already exists")
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	log.Println("registering events:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service called 'eventEngine.RegisterEvents(eventName)' first or check that you passed the right event name",
			toEventName,
		)
	}

	e.events[toEventName] = &subscribers{
		names:      append(e.events[toEventName].names, &newSubscriber.Name),
		addressChs: append(e.events[toEventName].addressChs, newSubscriber.AddressCh),
	}

	return nil
}

func (e *eventEngine) Publish(event *event.Event) error {
	if _, exists := e.events[event.Name]; !exists {
		return fmt.Errorf(
			"event %v not found. make sure the publishing service called 'RegisterEvents()'",
			event.Name,
		)
	}

	e.eventEngineCh <- event

	return nil
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	// a subscriber may register one addressCh for several events
	closed := make(map[chan<- any]struct{})

	for _, subscribers := range e.events {
		for _, addressCh := range subscribers.addressChs {
			if addressCh == nil {
				continue
			}

			if _, ok := closed[addressCh]; ok {
				continue
			}

			close(addressCh)
			closed[addressCh] = struct{}{}
		}
	}

	log.Println("subscriber addressChs are shut down")
}
