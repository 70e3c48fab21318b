package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

// Notification routing keys and payload kinds picked up by the
// notification service.
const (
	KindReservation  = "reservation"
	KindCancellation = "cancellation"
)

type ReservationStore interface {
	CreateIfVacant(ctx context.Context, res *domain.Reservation) error
	ByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type ReserveInput struct {
	RoomID     string
	UserID     string
	StartDate  string
	EndDate    string
	GuestEmail string
	GuestName  string
}

type ReservationService struct {
	repo ReservationStore
	pub  EventPublisher
	log  *zap.Logger
}

func NewReservationService(repo ReservationStore, pub EventPublisher, log *zap.Logger) *ReservationService {
	return &ReservationService{repo: repo, pub: pub, log: log}
}

// Reserve books the room for the half-open [start, end) stay. The overlap
// check and the insert run as one serialized store operation, so two
// concurrent conflicting requests cannot both commit.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (*domain.Reservation, error) {
	stay, err := domain.NewStayRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		RoomID:     in.RoomID,
		UserID:     in.UserID,
		StartDate:  stay.Start,
		EndDate:    stay.End,
		Status:     domain.StatusConfirmed,
		GuestEmail: in.GuestEmail,
		GuestName:  in.GuestName,
	}
	if err := s.repo.CreateIfVacant(ctx, res); err != nil {
		return nil, err
	}

	s.log.Info("reservation confirmed",
		zap.String("reservation_id", res.ID),
		zap.String("room_id", res.RoomID),
		zap.String("user_id", res.UserID),
		zap.String("start_date", res.StartDate),
		zap.String("end_date", res.EndDate),
	)
	s.notify(ctx, res.GuestEmail, res.GuestName, KindReservation)
	return res, nil
}

func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Cancel moves the reservation to CANCELLED, freeing its dates for future
// availability and conflict checks. Cancelling an already-cancelled
// reservation is a no-op success.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidReservationID, id)
	}
	res, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	s.log.Info("reservation cancelled",
		zap.String("reservation_id", id),
		zap.String("room_id", res.RoomID),
	)
	s.notify(ctx, res.GuestEmail, res.GuestName, KindCancellation)
	return nil
}

// notify publishes a guest notification event. The booking write has already
// committed; a broker hiccup is logged and never fails the caller.
func (s *ReservationService) notify(ctx context.Context, email, name, kind string) {
	if email == "" {
		return
	}
	if name == "" {
		name = "Guest"
	}
	err := s.pub.PublishJSON(ctx, "notification."+kind, map[string]any{
		"email": email,
		"name":  name,
		"type":  kind,
	})
	if err != nil {
		s.log.Warn("publish notification failed",
			zap.String("type", kind),
			zap.Error(err),
		)
	}
}
