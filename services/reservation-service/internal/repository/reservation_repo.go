package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

type ReservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Reservation{})
}

// CreateIfVacant commits the reservation unless a CONFIRMED stay for the same
// room overlaps it. The parent room row is locked first, so all writers for
// one room serialize on that row while other rooms proceed unblocked; without
// the anchor lock two first-ever bookings for a room could both pass the
// overlap check. Locking the room also validates it exists.
func (r *ReservationRepo) CreateIfVacant(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "room_number = ?", res.RoomID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRoomNotFound
			}
			return err
		}

		var clash domain.Reservation
		err = tx.Where("room_id = ? AND status = ?", res.RoomID, domain.StatusConfirmed).
			Where("start_date < ? AND end_date > ?", res.EndDate, res.StartDate).
			Take(&clash).Error
		if err == nil {
			return domain.ErrRoomUnavailable
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		return tx.Create(res).Error
	})
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	out := make([]domain.Reservation, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel moves the reservation to CANCELLED. Cancelling an already-cancelled
// reservation matches the row again and stays a no-op success.
func (r *ReservationRepo) Cancel(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Update("status", domain.StatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// OccupiedRooms returns the distinct room numbers holding a non-cancelled
// reservation that overlaps the stay.
func (r *ReservationRepo) OccupiedRooms(ctx context.Context, stay domain.StayRange) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("status <> ?", domain.StatusCancelled).
		Where("start_date < ? AND end_date > ?", stay.End, stay.Start).
		Distinct().
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
