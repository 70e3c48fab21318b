package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ID-JA/bookie/services/reservation-service/internal/domain"
)

type RoomRegistry interface {
	Register(ctx context.Context, in domain.Room) (*domain.Room, error)
	FindAvailable(ctx context.Context, start, end string) ([]domain.Room, error)
}

type RoomsHandler struct {
	svc RoomRegistry
}

func NewRoomsHandler(svc RoomRegistry) *RoomsHandler {
	return &RoomsHandler{svc: svc}
}

// POST /rooms/
func (h *RoomsHandler) Create(c *gin.Context) {
	var in struct {
		RoomNumber string  `json:"room_number" binding:"required"`
		RoomType   string  `json:"room_type" binding:"required"`
		Price      float64 `json:"price" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.Register(c.Request.Context(), domain.Room{
		RoomNumber: in.RoomNumber,
		RoomType:   in.RoomType,
		Price:      in.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

// GET /rooms/available?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *RoomsHandler) Available(c *gin.Context) {
	rooms, err := h.svc.FindAvailable(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}
