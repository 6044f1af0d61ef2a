package core

import "sync"

// SystemEventCode identifies the kind of an event published on an EventBus.
type SystemEventCode int

const (
	// An asset file was created or modified.
	/* Context usage:
	 * string path = data.Path;
	 */
	EventAssetChanged SystemEventCode = 0x01

	// An asset file was removed from disk.
	EventAssetRemoved SystemEventCode = 0x02

	// A model finished loading.
	/* Context usage:
	 * string id = data.ID;
	 */
	EventModelLoaded SystemEventCode = 0x03
)

// EventContext carries the payload of a fired event.
type EventContext struct {
	ID   string
	Path string
	Err  error
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events to listeners registered per code.
type EventBus struct {
	mu         sync.RWMutex
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (eb *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, e := range eb.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eb.registered[code] = append(eb.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the listener for the given code. Returns false when no
// registration matched.
func (eb *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	events := eb.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eb.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (eb *EventBus) Fire(code SystemEventCode, sender interface{}, data EventContext) bool {
	eb.mu.RLock()
	events := make([]*registeredEvent, len(eb.registered[code]))
	copy(events, eb.registered[code])
	eb.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, sender, data) {
			return true
		}
	}
	return false
}
