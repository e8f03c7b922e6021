package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

// ErrQueueFull is returned by Enqueue when the relay buffer is saturated.
var ErrQueueFull = errors.New("event relay queue full")

// Publisher delivers an encoded event to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EventRelay forwards domain events to a Publisher from a background
// goroutine so request handlers never wait on broker I/O.
type EventRelay struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
	queue     chan events.Event
	done      chan struct{}
	startOnce sync.Once
}

// NewEventRelay creates a relay with a bounded queue.
func NewEventRelay(publisher Publisher, channel string, queueSize int, logger *zap.Logger) *EventRelay {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &EventRelay{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
		queue:     make(chan events.Event, queueSize),
		done:      make(chan struct{}),
	}
}

// Enqueue schedules an event for publication without blocking.
func (r *EventRelay) Enqueue(event events.Event) error {
	select {
	case r.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the relay loop. It stops when ctx is cancelled, after
// draining events that were already queued.
func (r *EventRelay) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		go r.run(ctx)
	})
}

// Done is closed once the relay loop has exited.
func (r *EventRelay) Done() <-chan struct{} {
	return r.done
}

func (r *EventRelay) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case event := <-r.queue:
			r.publish(ctx, event)
		case <-ctx.Done():
			r.drain()
			return
		}
	}
}

func (r *EventRelay) drain() {
	for {
		select {
		case event := <-r.queue:
			r.publish(context.Background(), event)
		default:
			return
		}
	}
}

func (r *EventRelay) publish(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("encode event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if err := r.publisher.Publish(ctx, r.channel, payload); err != nil {
		r.logger.Warn("publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("channel", r.channel),
			zap.Error(err))
		return
	}
	r.logger.Debug("event relayed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
