package models

type ScheduleRevenue struct {
	ScheduleID  string `json:"schedule_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Bookings    int    `json:"bookings"`
	Revenue     int64  `json:"revenue"`
}

type RevenueReport struct {
	Schedules         int               `json:"schedules"`
	TotalBookings     int               `json:"total_bookings"`
	ConfirmedBookings int               `json:"confirmed_bookings"`
	CancelledBookings int               `json:"cancelled_bookings"`
	TotalRevenue      int64             `json:"total_revenue"`
	PerSchedule       []ScheduleRevenue `json:"per_schedule"`
}

// Availability counts seat states of one schedule.
type Availability struct {
	ScheduleID string `json:"schedule_id"`
	Available  int    `json:"available"`
	Booked     int    `json:"booked"`
}
