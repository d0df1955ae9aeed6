package notifymock

import (
	"sync"

	"procurement-backend/internal/notification"
)

// Recorder is a synchronous EventDispatcher stand-in: events are captured
// in-order in memory instead of being shipped anywhere.
type Recorder struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *Recorder) Dispatch(ev notification.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Last() (notification.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notification.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
