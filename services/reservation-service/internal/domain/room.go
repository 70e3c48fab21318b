package domain

// Room is a hotel room definition. RoomNumber is the business key bookings
// reference; rooms are registered once and never mutated.
type Room struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	RoomNumber string  `gorm:"uniqueIndex" json:"room_number"`
	RoomType   string  `json:"room_type"` // e.g. "Single", "Suite", "Sea View"
	Price      float64 `json:"price"`
}
