package models

import "time"

type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// DurationHours returns the booked span in hours.
func (b Booking) DurationHours() float64 {
	return b.EndTime.Sub(b.StartTime).Hours()
}
