package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ID-JA/bookie/services/notification-service/internal/events"
	"github.com/ID-JA/bookie/services/notification-service/internal/notifier"
	"github.com/ID-JA/bookie/services/notification-service/internal/repository"
)

type template struct {
	subject string
	body    string // fmt format, guest name is the only argument
}

var templates = map[string]template{
	events.KindReservation: {
		subject: "Booking Confirmed",
		body:    "Hello %s,\n\nYour reservation is confirmed. We look forward to hosting you!",
	},
	events.KindCancellation: {
		subject: "Booking Canceled",
		body:    "Hello %s,\n\nYour reservation has been canceled as requested. We hope to see you another time.",
	},
	events.KindCheckout: {
		subject: "Thank You for Staying",
		body:    "Hello %s,\n\nWe hope you enjoyed your stay. Please leave us a review!",
	},
	events.KindInit: {
		subject: "Welcome",
		body:    "Hello %s,\n\nWelcome to our platform. Your account is now active.",
	},
}

// DeliveryLog is the append-only audit sink.
type DeliveryLog interface {
	Append(ctx context.Context, rec *repository.DeliveryRecord) error
}

// Dispatcher runs the render -> send -> record pipeline. Both the queue
// worker and the synchronous HTTP path funnel through Dispatch so the two
// entry points cannot drift apart.
type Dispatcher struct {
	mailer notifier.Mailer
	audit  DeliveryLog
	log    *zap.Logger
}

func New(mailer notifier.Mailer, audit DeliveryLog, log *zap.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, audit: audit, log: log}
}

// Dispatch attempts delivery and appends exactly one delivery record with
// the outcome. Transport errors are recorded as "failed", never returned;
// the bool reports whether the mail went out. A failed audit write is
// logged and swallowed so the caller can still acknowledge the event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev events.Notification) bool {
	tpl, ok := templates[ev.Type]
	if !ok {
		// callers validate at decode time, so this is a programming error
		d.log.Warn("no template for notification kind", zap.String("type", ev.Type))
		return false
	}

	status := "sent"
	if err := d.mailer.Send(ctx, ev.Email, tpl.subject, fmt.Sprintf(tpl.body, ev.Name)); err != nil {
		d.log.Warn("email delivery failed",
			zap.String("to", ev.Email),
			zap.String("type", ev.Type),
			zap.Error(err),
		)
		status = "failed"
	} else {
		d.log.Info("email sent",
			zap.String("to", ev.Email),
			zap.String("type", ev.Type),
		)
	}

	rec := &repository.DeliveryRecord{
		User:      ev.Email,
		Name:      ev.Name,
		Status:    status,
		Type:      ev.Type,
		Timestamp: time.Now().UTC(),
	}
	if err := d.audit.Append(ctx, rec); err != nil {
		d.log.Error("delivery log write failed", zap.Error(err))
	}
	return status == "sent"
}
