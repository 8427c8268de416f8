package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 1; i <= 3; i++ {
		q.Emit(EventZoneEnter, &ZonePayload{Zone: "hoop", Body: core.BodyID(i)}, int64(i))
	}

	if q.Len() != 3 {
		t.Errorf("Expected 3 pending events, got %d", q.Len())
	}

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		p := ev.Payload.(*ZonePayload)
		if p.Body != core.BodyID(i+1) || ev.Frame != int64(i+1) {
			t.Errorf("Event %d out of order: body=%v frame=%d", i, p.Body, ev.Frame)
		}
	}

	if q.Consume() != nil {
		t.Error("Expected nil after draining")
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Emit(EventZoneExit, nil, int64(i))
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events after overflow, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", events[0].Frame)
	}
	if events[len(events)-1].Frame != int64(total-1) {
		t.Errorf("Expected newest frame %d, got %d", total-1, events[len(events)-1].Frame)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Emit(EventZoneEnter, nil, 0)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 200 {
		t.Errorf("Expected 200 events from producers, got %d", got)
	}
}

type recordingHandler struct {
	types []EventType
	seen  []GameEvent
}

func (h *recordingHandler) EventTypes() []EventType { return h.types }
func (h *recordingHandler) HandleEvent(ev GameEvent) { h.seen = append(h.seen, ev) }

func TestRouterDispatchByType(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	zones := &recordingHandler{types: []EventType{EventZoneEnter}}
	diag := &recordingHandler{types: DiagnosticTypes()}
	r.Register(zones)
	r.Register(diag)

	q.Emit(EventZoneEnter, nil, 1)
	q.Emit(EventDilationStarted, nil, 1)
	q.Emit(EventZoneExit, nil, 1)
	q.Emit(EventDilationRecovered, nil, 2)

	if n := r.DispatchAll(); n != 4 {
		t.Errorf("Expected 4 consumed events, got %d", n)
	}
	if len(zones.seen) != 1 || zones.seen[0].Type != EventZoneEnter {
		t.Errorf("Zone handler received %+v", zones.seen)
	}
	if len(diag.seen) != 2 || diag.seen[1].Type != EventDilationRecovered {
		t.Errorf("Diagnostic handler received %+v", diag.seen)
	}
	if r.HandlerCount(EventZoneExit) != 0 {
		t.Error("Expected no handler for zone exit")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventDilationHeld.String() != "dilation_held" {
		t.Errorf("Unexpected name %q", EventDilationHeld.String())
	}
	if EventType(9999).String() != "unknown" {
		t.Error("Expected unknown for unregistered type")
	}
}
