package domain

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is one booking of a room for a half-open [StartDate, EndDate)
// stay. Dates are stored as ISO YYYY-MM-DD strings so that lexicographic
// comparison in SQL matches chronological order; the overlap queries depend
// on that encoding. The only permitted mutation is CONFIRMED -> CANCELLED.
type Reservation struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	RoomID     string            `gorm:"index" json:"room_id"` // room number
	UserID     string            `gorm:"index" json:"user_id"`
	StartDate  string            `gorm:"index" json:"start_date"`
	EndDate    string            `gorm:"index" json:"end_date"`
	Status     ReservationStatus `gorm:"index" json:"status"`
	GuestEmail string            `json:"guest_email,omitempty"`
	GuestName  string            `json:"guest_name,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
