package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Notification kinds the service knows how to render. Anything else is
// rejected at decode time, before it can reach the delivery pipeline.
const (
	KindReservation  = "reservation"
	KindCancellation = "cancellation"
	KindCheckout     = "checkout"
	KindInit         = "init"
)

var ErrUnknownKind = errors.New("unknown notification kind")

// Notification is the single event shape both entry points (queue and
// synchronous HTTP) accept.
type Notification struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// Validate checks required fields and the kind, defaulting a missing name
// to "Guest".
func (n *Notification) Validate() error {
	if n.Email == "" {
		return errors.New("email is required")
	}
	if n.Name == "" {
		n.Name = "Guest"
	}
	switch n.Type {
	case KindReservation, KindCancellation, KindCheckout, KindInit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, n.Type)
	}
}

// Decode parses and validates a queued payload.
func Decode(b []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(b, &n); err != nil {
		return Notification{}, fmt.Errorf("decode payload: %w", err)
	}
	if err := n.Validate(); err != nil {
		return Notification{}, err
	}
	return n, nil
}
