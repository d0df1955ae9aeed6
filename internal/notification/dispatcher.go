package notification

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const dispatchTimeout = 15 * time.Second

// Dispatcher sends events on a background goroutine so the approval
// transaction never waits on the notifier. Failures are logged and dropped;
// they must not roll anything back.
type Dispatcher struct {
	notifier Notifier
}

func NewDispatcher(n Notifier) *Dispatcher { return &Dispatcher{notifier: n} }

// Dispatch stamps the event and fires it asynchronously. Uses a fresh
// context: the HTTP request context ends before the send does.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil || d.notifier == nil {
		return
	}
	ev.EventID = uuid.NewString()
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := d.notifier.Notify(ctx, ev); err != nil {
			log.Printf("notification: dropping %s for %s/%s: %v", ev.Kind, ev.EntityType, ev.EntityID, err)
		}
	}()
}

// LogNotifier is the fallback when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev Event) error {
	log.Printf("notification: %s %s/%s level=%d to=%s", ev.Kind, ev.EntityType, ev.EntityID, ev.Level, ev.RecipientRole)
	return nil
}
