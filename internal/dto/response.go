package dto

import (
	"github.com/Eursukkul/eticket/internal/models"
)

type AuthResponse struct {
	Session *models.Session `json:"session"`
	Token   string          `json:"token"`
}

type ScheduleResponse struct {
	models.Schedule
	AvailableSeats int `json:"available_seats"`
	BookedSeats    int `json:"booked_seats"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToScheduleResponse(s *models.Schedule, av models.Availability) ScheduleResponse {
	return ScheduleResponse{
		Schedule:       *s,
		AvailableSeats: av.Available,
		BookedSeats:    av.Booked,
	}
}
