package session

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventGraphReplaced    EventType = "graph_replaced"
	EventLoadingChanged   EventType = "loading_changed"
	EventBannerSet        EventType = "banner_set"
	EventBannerCleared    EventType = "banner_cleared"
	EventNodeSelected     EventType = "node_selected"
	EventEdgeSelected     EventType = "edge_selected"
	EventSelectionCleared EventType = "selection_cleared"
	EventStatusUpdated    EventType = "status_updated"
	EventConsoleChanged   EventType = "console_changed"
	EventQueryExecuted    EventType = "query_executed"
	EventPaletteReloaded  EventType = "palette_reloaded"
)

// Event represents a change to the page state
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus fans events out to subscriber channels
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	eb.subscribers = append(eb.subscribers, ch)
	eb.mu.Unlock()
}

// Publish sends an event to all subscribers without blocking
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
