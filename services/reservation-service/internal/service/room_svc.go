package service

import (
	"context"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

// RoomStore is the registry slice of the persistence layer this service needs.
type RoomStore interface {
	Create(ctx context.Context, room *domain.Room) error
	ListExcluding(ctx context.Context, occupied []string) ([]domain.Room, error)
}

// OccupancyStore answers which rooms hold an overlapping non-cancelled stay.
type OccupancyStore interface {
	OccupiedRooms(ctx context.Context, stay domain.StayRange) ([]string, error)
}

type RoomService struct {
	rooms RoomStore
	stays OccupancyStore
}

func NewRoomService(rooms RoomStore, stays OccupancyStore) *RoomService {
	return &RoomService{rooms: rooms, stays: stays}
}

func (s *RoomService) Register(ctx context.Context, in domain.Room) (*domain.Room, error) {
	if err := s.rooms.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// FindAvailable returns every room with no overlapping non-cancelled
// reservation in [start, end). Rooms with no bookings at all are trivially
// available. Read-only, safe to call concurrently.
func (s *RoomService) FindAvailable(ctx context.Context, start, end string) ([]domain.Room, error) {
	stay, err := domain.NewStayRange(start, end)
	if err != nil {
		return nil, err
	}
	occupied, err := s.stays.OccupiedRooms(ctx, stay)
	if err != nil {
		return nil, err
	}
	return s.rooms.ListExcluding(ctx, occupied)
}
