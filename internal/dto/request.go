package dto

import "github.com/Eursukkul/eticket/internal/models"

type LoginRequest struct {
	Email    string      `json:"email" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=user admin"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ScheduleRequest struct {
	Origin      string             `json:"origin" validate:"required"`
	Destination string             `json:"destination" validate:"required"`
	Date        string             `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string             `json:"time" validate:"required,datetime=15:04"`
	Price       int64              `json:"price" validate:"gte=0"`
	TotalSeats  int                `json:"total_seats" validate:"gt=0"`
	VehicleKind models.VehicleKind `json:"vehicle_kind" validate:"required,oneof=bus train"`
}

func (r *ScheduleRequest) ToInput() models.ScheduleInput {
	return models.ScheduleInput{
		Origin:      r.Origin,
		Destination: r.Destination,
		Date:        r.Date,
		Time:        r.Time,
		Price:       r.Price,
		TotalSeats:  r.TotalSeats,
		VehicleKind: r.VehicleKind,
	}
}

type PriceRequest struct {
	Price *int64 `json:"price" validate:"required,gte=0"`
}

type CreateBookingRequest struct {
	ScheduleID     string   `json:"schedule_id" validate:"required"`
	Seats          []string `json:"seats" validate:"required,min=1,dive,required"`
	PassengerName  string   `json:"passenger_name" validate:"required"`
	PassengerEmail string   `json:"passenger_email" validate:"required,email"`
	PassengerPhone string   `json:"passenger_phone" validate:"required"`
}
