package service

import "github.com/Eursukkul/eticket/internal/models"

// RevenueReport sums confirmed booking amounts overall and per existing
// schedule. Cancelled bookings are counted but earn nothing.
func (s *Store) RevenueReport() models.RevenueReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := models.RevenueReport{
		Schedules:     len(s.schedules),
		TotalBookings: len(s.bookings),
		PerSchedule:   make([]models.ScheduleRevenue, 0, len(s.schedules)),
	}

	perSchedule := make(map[string]*models.ScheduleRevenue, len(s.schedules))
	for _, sch := range s.schedules {
		report.PerSchedule = append(report.PerSchedule, models.ScheduleRevenue{
			ScheduleID:  sch.ID,
			Origin:      sch.Origin,
			Destination: sch.Destination,
			Date:        sch.Date,
		})
	}
	for i := range report.PerSchedule {
		perSchedule[report.PerSchedule[i].ScheduleID] = &report.PerSchedule[i]
	}

	for _, b := range s.bookings {
		switch b.Status {
		case models.StatusCancelled:
			report.CancelledBookings++
		case models.StatusConfirmed:
			report.ConfirmedBookings++
			report.TotalRevenue += b.Amount
			if line, ok := perSchedule[b.ScheduleID]; ok {
				line.Bookings++
				line.Revenue += b.Amount
			}
		}
	}
	return report
}
