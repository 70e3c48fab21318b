package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register wires the reservation-service HTTP surface.
func Register(r *gin.Engine, rooms *RoomsHandler, reservations *ReservationsHandler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hotel Reservation Microservice is Running"})
	})

	r.POST("/rooms/", rooms.Create)
	r.GET("/rooms/available", rooms.Available)

	r.POST("/reservations/", reservations.Create)
	r.GET("/reservations/user/:user_id", reservations.ListByUser)
	r.PUT("/reservations/:reservation_id/cancel", reservations.Cancel)
}
