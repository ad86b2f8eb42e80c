package service

import (
	"fmt"

	"github.com/Eursukkul/eticket/internal/models"
)

const (
	SeedAdminEmail    = "admin@eticket.com"
	SeedAdminPassword = "admin123"
)

var seatLetters = [...]string{"A", "B", "C", "D"}

// GenerateSeats lays out total seats four to a row: 1A 1B 1C 1D 2A ...
func GenerateSeats(scheduleID string, total int) []models.Seat {
	if total < 0 {
		total = 0
	}
	seats := make([]models.Seat, 0, total)
	for i := 0; i < total; i++ {
		seats = append(seats, models.Seat{
			ID:         fmt.Sprintf("%s-seat-%d", scheduleID, i+1),
			ScheduleID: scheduleID,
			SeatNumber: fmt.Sprintf("%d%s", i/len(seatLetters)+1, seatLetters[i%len(seatLetters)]),
			Status:     models.SeatAvailable,
		})
	}
	return seats
}

func seedSchedules() []models.Schedule {
	return []models.Schedule{
		{ID: "s1", Origin: "Delhi", Destination: "Mumbai", Date: "2026-03-01", Time: "08:00", Price: 1200, TotalSeats: 40, VehicleKind: models.VehicleTrain},
		{ID: "s2", Origin: "Delhi", Destination: "Jaipur", Date: "2026-03-01", Time: "10:00", Price: 600, TotalSeats: 36, VehicleKind: models.VehicleBus},
		{ID: "s3", Origin: "Mumbai", Destination: "Pune", Date: "2026-03-02", Time: "07:30", Price: 400, TotalSeats: 36, VehicleKind: models.VehicleBus},
		{ID: "s4", Origin: "Bangalore", Destination: "Chennai", Date: "2026-03-02", Time: "14:00", Price: 800, TotalSeats: 40, VehicleKind: models.VehicleTrain},
		{ID: "s5", Origin: "Kolkata", Destination: "Patna", Date: "2026-03-03", Time: "06:00", Price: 550, TotalSeats: 36, VehicleKind: models.VehicleTrain},
		{ID: "s6", Origin: "Hyderabad", Destination: "Vizag", Date: "2026-03-03", Time: "16:00", Price: 700, TotalSeats: 40, VehicleKind: models.VehicleBus},
	}
}

func seedSeats() []models.Seat {
	var seats []models.Seat
	for _, sch := range seedSchedules() {
		seats = append(seats, GenerateSeats(sch.ID, sch.TotalSeats)...)
	}
	return seats
}

func seedAccounts() []models.Account {
	return []models.Account{
		{ID: "admin1", Name: "Admin", Email: SeedAdminEmail, Phone: "9999999999", Role: models.RoleAdmin, Password: SeedAdminPassword},
	}
}
