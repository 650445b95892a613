package events

import (
	"context"
	"log/slog"
	"time"
)

// Publisher is what the notifier needs from a producer. Tests swap in fakes.
type Publisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

// Notifier is the fire-and-forget notification sink. Publishing happens on a
// detached goroutine after the triggering transaction has committed; failures
// are logged and never reach the caller.
type Notifier struct {
	Producer Publisher
	Logger   *slog.Logger
}

func (n *Notifier) Notify(event string, key string, payload map[string]any) {
	if n == nil || n.Producer == nil {
		return
	}
	body := map[string]any{"type": event}
	for k, v := range payload {
		body[k] = v
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.Producer.PublishEvent(ctx, key, body); err != nil && n.Logger != nil {
			n.Logger.Error("notify_publish_error", "event", event, "error", err)
		}
	}()
}
