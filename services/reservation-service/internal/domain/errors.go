package domain

import "errors"

var (
	ErrInvalidRange         = errors.New("invalid date range")
	ErrRoomExists           = errors.New("room number already exists")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomUnavailable      = errors.New("room unavailable for requested dates")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidReservationID = errors.New("invalid reservation id")
)
