package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
	"github.com/ID-JA/bookie/services/reservation-service/internal/service"
)

type BookingDesk interface {
	Reserve(ctx context.Context, in service.ReserveInput) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

type ReservationsHandler struct {
	svc BookingDesk
}

func NewReservationsHandler(svc BookingDesk) *ReservationsHandler {
	return &ReservationsHandler{svc: svc}
}

// POST /reservations/
func (h *ReservationsHandler) Create(c *gin.Context) {
	var in struct {
		RoomID     string `json:"room_id" binding:"required"`
		UserID     string `json:"user_id" binding:"required"`
		StartDate  string `json:"start_date" binding:"required"`
		EndDate    string `json:"end_date" binding:"required"`
		GuestEmail string `json:"guest_email" binding:"omitempty,email"`
		GuestName  string `json:"guest_name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Reserve(c.Request.Context(), service.ReserveInput{
		RoomID:     in.RoomID,
		UserID:     in.UserID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		GuestEmail: in.GuestEmail,
		GuestName:  in.GuestName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, domain.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Room is already booked for these dates."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /reservations/user/:user_id
func (h *ReservationsHandler) ListByUser(c *gin.Context) {
	list, err := h.svc.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /reservations/:reservation_id/cancel
func (h *ReservationsHandler) Cancel(c *gin.Context) {
	err := h.svc.Cancel(c.Request.Context(), c.Param("reservation_id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReservationID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID format"})
		case errors.Is(err, domain.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}
