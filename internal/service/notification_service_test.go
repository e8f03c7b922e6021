package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

type fakeQueue struct {
	got []events.Event
	err error
}

func (q *fakeQueue) Enqueue(e events.Event) error {
	if q.err != nil {
		return q.err
	}
	q.got = append(q.got, e)
	return nil
}

func TestNotificationService_QueuesEveryEventType(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	queue := &fakeQueue{}
	NewNotificationService(dispatcher, queue, zap.NewNop()).RegisterHandlers()

	for _, et := range events.AllEventTypes {
		assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: et, TicketID: "T-1001"}))
	}
	assert.Len(t, queue.got, len(events.AllEventTypes))
}

func TestNotificationService_QueueErrorSurfaces(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	full := errors.New("full")
	NewNotificationService(dispatcher, &fakeQueue{err: full}, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated})
	assert.ErrorIs(t, err, full)
}

func TestNotificationService_LogOnlyWithoutQueue(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, zap.NewNop()).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketAssigned}))
}
