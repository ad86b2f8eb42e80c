package models

type VehicleKind string

const (
	VehicleBus   VehicleKind = "bus"
	VehicleTrain VehicleKind = "train"
)

// Schedule is one offered journey. Price is in whole currency units.
type Schedule struct {
	ID          string      `json:"id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Price       int64       `json:"price"`
	TotalSeats  int         `json:"total_seats"`
	VehicleKind VehicleKind `json:"vehicle_kind"`
}

// ScheduleInput carries the fields of a schedule that is not created yet.
type ScheduleInput struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Price       int64       `json:"price"`
	TotalSeats  int         `json:"total_seats"`
	VehicleKind VehicleKind `json:"vehicle_kind"`
}

func (in ScheduleInput) WithID(id string) Schedule {
	return Schedule{
		ID:          id,
		Origin:      in.Origin,
		Destination: in.Destination,
		Date:        in.Date,
		Time:        in.Time,
		Price:       in.Price,
		TotalSeats:  in.TotalSeats,
		VehicleKind: in.VehicleKind,
	}
}
