package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

type RoomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func (r *RoomRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Room{})
}

// Create inserts a room; the unique index on room_number rejects duplicates.
func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrRoomExists
	}
	return err
}

func (r *RoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	out := make([]domain.Room, 0)
	if err := r.db.WithContext(ctx).Order("room_number ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListExcluding returns every room whose number is not in occupied. An empty
// occupied list returns the whole registry.
func (r *RoomRepo) ListExcluding(ctx context.Context, occupied []string) ([]domain.Room, error) {
	if len(occupied) == 0 {
		return r.List(ctx)
	}
	out := make([]domain.Room, 0)
	err := r.db.WithContext(ctx).
		Where("room_number NOT IN ?", occupied).
		Order("room_number ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
