package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

// fakeLedger mirrors the store contract in memory: the overlap check and the
// insert run under one lock, like the per-room serialization the SQL layer
// provides.
type fakeLedger struct {
	mu    sync.Mutex
	byID  map[string]*domain.Reservation
	rooms map[string]bool
}

func newFakeLedger(roomNumbers ...string) *fakeLedger {
	rooms := make(map[string]bool, len(roomNumbers))
	for _, n := range roomNumbers {
		rooms[n] = true
	}
	return &fakeLedger{byID: make(map[string]*domain.Reservation), rooms: rooms}
}

func (f *fakeLedger) CreateIfVacant(_ context.Context, res *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.rooms[res.RoomID] {
		return domain.ErrRoomNotFound
	}
	stay := domain.StayRange{Start: res.StartDate, End: res.EndDate}
	for _, other := range f.byID {
		if other.RoomID != res.RoomID || other.Status != domain.StatusConfirmed {
			continue
		}
		if stay.Overlaps(domain.StayRange{Start: other.StartDate, End: other.EndDate}) {
			return domain.ErrRoomUnavailable
		}
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	cp := *res
	f.byID[res.ID] = &cp
	return nil
}

func (f *fakeLedger) ByID(_ context.Context, id string) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (f *fakeLedger) ListByUser(_ context.Context, userID string) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Reservation, 0)
	for _, res := range f.byID {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeLedger) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byID[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	res.Status = domain.StatusCancelled
	return nil
}

func (f *fakeLedger) OccupiedRooms(_ context.Context, stay domain.StayRange) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, res := range f.byID {
		if res.Status == domain.StatusCancelled || seen[res.RoomID] {
			continue
		}
		if stay.Overlaps(domain.StayRange{Start: res.StartDate, End: res.EndDate}) {
			seen[res.RoomID] = true
			out = append(out, res.RoomID)
		}
	}
	return out, nil
}

func (f *fakeLedger) confirmedFor(roomID string) []domain.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Reservation, 0)
	for _, res := range f.byID {
		if res.RoomID == roomID && res.Status == domain.StatusConfirmed {
			out = append(out, *res)
		}
	}
	return out
}

type fakeRooms struct {
	mu   sync.Mutex
	byNo map[string]domain.Room
}

func newFakeRooms(rooms ...domain.Room) *fakeRooms {
	byNo := make(map[string]domain.Room, len(rooms))
	for _, r := range rooms {
		byNo[r.RoomNumber] = r
	}
	return &fakeRooms{byNo: byNo}
}

func (f *fakeRooms) Create(_ context.Context, room *domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.byNo[room.RoomNumber]; dup {
		return domain.ErrRoomExists
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	f.byNo[room.RoomNumber] = *room
	return nil
}

func (f *fakeRooms) ListExcluding(_ context.Context, occupied []string) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	skip := make(map[string]bool, len(occupied))
	for _, n := range occupied {
		skip[n] = true
	}
	out := make([]domain.Room, 0)
	for _, r := range f.byNo {
		if !skip[r.RoomNumber] {
			out = append(out, r)
		}
	}
	return out, nil
}

type published struct {
	key     string
	payload map[string]any
}

type fakePublisher struct {
	mu   sync.Mutex
	err  error
	sent []published
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, _ := v.(map[string]any)
	f.sent = append(f.sent, published{key: key, payload: payload})
	return nil
}

func (f *fakePublisher) events() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.sent...)
}
