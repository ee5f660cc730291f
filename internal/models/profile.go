package models

import "time"

type Profile struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	MonthlyHoursLimit  int       `json:"monthly_hours_limit"`
	DailyHoursLimit    int       `json:"daily_hours_limit"`
	HoursUsedThisMonth float64   `json:"hours_used_this_month"`
	HoursResetDate     time.Time `json:"hours_reset_date,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HoursRemaining is the monthly allowance still open for self-service booking.
func (p Profile) HoursRemaining() float64 {
	remaining := float64(p.MonthlyHoursLimit) - p.HoursUsedThisMonth
	if remaining < 0 {
		return 0
	}
	return remaining
}

type UserRole struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin, member
}
