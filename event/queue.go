package event

import (
	"sync/atomic"

	"github.com/lixenwraith/slowmo/parameter"
)

// EventQueue carries zone crossings and dilation phase notifications to the host loop
//
// Producers are the zone triggers (during physics steps) and the controllers (inside Update or
// from a teardown goroutine), so Push is lock-free and safe from any goroutine. The host loop
// is the only consumer: it drains the queue once at the start of each frame, which is why a
// zone entry recorded during frame N reaches the eligibility gate in frame N+1.
//
// A slot is readable only after its published flag is set. When producers outrun the consumer
// by more than EventQueueSize the oldest entries are overwritten; diagnostics are advisory and
// the gate rejects stale duplicates anyway.
type EventQueue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Next slot to read
	tail      atomic.Uint64 // Next slot to claim
}

// NewEventQueue returns an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push enqueues ev
func (eq *EventQueue) Push(ev GameEvent) {
	slot := eq.tail.Add(1) - 1
	idx := slot & parameter.EventBufferMask

	eq.events[idx] = ev
	eq.published[idx].Store(true) // after the write, readers check this flag first

	// Drop the oldest unread entry when the ring wraps
	if head := eq.head.Load(); slot+1-head > parameter.EventQueueSize {
		eq.head.CompareAndSwap(head, slot+1-parameter.EventQueueSize)
	}
}

// Emit pushes a typed event; controllers and zones stamp it with their frame counter
func (eq *EventQueue) Emit(t EventType, payload any, frame int64) {
	eq.Push(GameEvent{Type: t, Payload: payload, Frame: frame})
}

// Consume returns pending events in push order
// Stops at the first slot whose producer has not finished writing; it is picked up next frame
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > parameter.EventQueueSize {
			available = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		result := make([]GameEvent, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break
			}
			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the pending count; approximate while producers are active
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return diff
}
