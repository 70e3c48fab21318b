package worker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ID-JA/bookie/services/notification-service/internal/events"
)

// Source hands out queued deliveries; pkg/mq.Consumer satisfies it.
type Source interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Notification) bool
}

// Worker is the single queue consumer. The channel is opened with prefetch 1,
// so at most one delivery is in flight; each message is processed to
// completion before the next is fetched, and acknowledged only afterwards.
// A crash mid-processing leaves the message unacked for redelivery, which is
// where the at-least-once guarantee comes from.
type Worker struct {
	src  Source
	disp Dispatcher
	log  *zap.Logger
}

func New(src Source, disp Dispatcher, log *zap.Logger) *Worker {
	return &Worker{src: src, disp: disp, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.src.Deliveries(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.process(ctx, d)
			// ack regardless of delivery outcome: the attempt and its audit
			// record are complete, redelivering would only duplicate them
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	ev, err := events.Decode(d.Body)
	if err != nil {
		w.log.Warn("dropping notification",
			zap.String("routing_key", d.RoutingKey),
			zap.Error(err),
		)
		return
	}
	w.disp.Dispatch(ctx, ev)
}
