package worker

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ID-JA/bookie/services/notification-service/internal/events"
)

type fakeSource struct {
	ch chan amqp.Delivery
}

func (f *fakeSource) Deliveries(_ context.Context) (<-chan amqp.Delivery, error) {
	return f.ch, nil
}

type recordingDispatcher struct {
	got []events.Notification
}

func (r *recordingDispatcher) Dispatch(_ context.Context, ev events.Notification) bool {
	r.got = append(r.got, ev)
	return true
}

func runWorker(t *testing.T, deliveries ...amqp.Delivery) *recordingDispatcher {
	t.Helper()
	src := &fakeSource{ch: make(chan amqp.Delivery, len(deliveries))}
	for _, d := range deliveries {
		src.ch <- d
	}
	close(src.ch)

	disp := &recordingDispatcher{}
	w := New(src, disp, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drain the queue")
	}
	return disp
}

func TestRun_DispatchesValidEvents(t *testing.T) {
	disp := runWorker(t,
		amqp.Delivery{RoutingKey: "notification.reservation", Body: []byte(`{"email":"a@x.com","name":"Ana","type":"reservation"}`)},
		amqp.Delivery{RoutingKey: "notification.cancellation", Body: []byte(`{"email":"b@x.com","name":"Bo","type":"cancellation"}`)},
	)

	require.Len(t, disp.got, 2)
	assert.Equal(t, "a@x.com", disp.got[0].Email)
	assert.Equal(t, events.KindCancellation, disp.got[1].Type)
}

func TestRun_DropsUnknownKind(t *testing.T) {
	disp := runWorker(t,
		amqp.Delivery{Body: []byte(`{"email":"a@x.com","name":"Ana","type":"bogus"}`)},
	)
	assert.Empty(t, disp.got)
}

func TestRun_DropsMalformedPayload(t *testing.T) {
	disp := runWorker(t,
		amqp.Delivery{Body: []byte(`{{{`)},
		amqp.Delivery{Body: []byte(`{"email":"a@x.com","type":"init"}`)},
	)
	// the bad message is skipped, the next one still processed
	require.Len(t, disp.got, 1)
	assert.Equal(t, events.KindInit, disp.got[0].Type)
	assert.Equal(t, "Guest", disp.got[0].Name)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	src := &fakeSource{ch: make(chan amqp.Delivery)}
	w := New(src, &recordingDispatcher{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
