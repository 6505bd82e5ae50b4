package events

import (
	"context"
	"errors"
	"sync"
)

// LocalPublisher dispatches synchronously to handlers registered in the same
// process. It is used when no broker URL is configured and in tests.
type LocalPublisher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{handlers: make(map[string][]Handler)}
}

func (p *LocalPublisher) Subscribe(eventType string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], h)
}

// Publish runs every handler for eventType and joins their errors.
func (p *LocalPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	ev, err := newEvent(eventType, payload)
	if err != nil {
		return err
	}

	p.mu.RLock()
	hs := append([]Handler(nil), p.handlers[eventType]...)
	p.mu.RUnlock()

	var errs []error
	for _, h := range hs {
		if err := h(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
