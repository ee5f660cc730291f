// Package schedule computes studio availability and quota figures over
// booking lists. All functions are pure; callers fetch the bookings and
// profile data first and pass them in.
package schedule

import (
	"time"

	"estudio/internal/models"
)

const (
	// OpenHour is the first bookable start hour of the day.
	OpenHour = 8

	// CloseHour is the end of the operating window; the last bookable
	// start hour is CloseHour-1.
	CloseHour = 20

	// MaxBookingHours caps a single booking regardless of open space.
	MaxBookingHours = 4
)

// Slot is a booked [Start, End) hour range within one day.
type Slot struct {
	Start int
	End   int
}

// StartHours returns the fixed operating grid, 8..19 ascending.
func StartHours() []int {
	hours := make([]int, 0, CloseHour-OpenHour)
	for h := OpenHour; h < CloseHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BookedSlots projects every booking starting on the given calendar date
// (any owner) to its hour range. Bookings that spill outside the operating
// window are represented faithfully so overlap checks still respect them.
func BookedSlots(bookings []models.Booking, date time.Time) []Slot {
	var slots []Slot
	for _, b := range bookings {
		if !sameDay(b.StartTime, date) {
			continue
		}
		slots = append(slots, Slot{Start: b.StartTime.Hour(), End: b.EndTime.Hour()})
	}
	return slots
}

// IsHourAvailable reports whether [startHour, startHour+duration) is free of
// any booked slot on the date. Half-open intervals: a booking ending at hour
// H does not block a new booking starting at H.
func IsHourAvailable(bookings []models.Booking, date time.Time, startHour, duration int) bool {
	endHour := startHour + duration
	for _, slot := range BookedSlots(bookings, date) {
		if startHour < slot.End && endHour > slot.Start {
			return false
		}
	}
	return true
}

// AvailableStartHours returns the free one-hour start slots for the date in
// grid order.
func AvailableStartHours(bookings []models.Booking, date time.Time) []int {
	available := make([]int, 0, CloseHour-OpenHour)
	for _, hour := range StartHours() {
		if IsHourAvailable(bookings, date, hour, 1) {
			available = append(available, hour)
		}
	}
	return available
}

// MaxDuration returns how many contiguous hours can be bought from startHour:
// the 4-hour booking cap, tightened by the nearest later booked slot and by
// the member's remaining daily allowance. Never below 1 so a free start hour
// always offers at least the one-hour option; when the true remainder is
// zero the confirmation-time quota check rejects the booking instead.
func MaxDuration(bookings []models.Booking, date time.Time, startHour, dailyLimit int, hoursUsedToday float64) int {
	maxDur := MaxBookingHours
	for _, slot := range BookedSlots(bookings, date) {
		if slot.Start > startHour && slot.Start-startHour < maxDur {
			maxDur = slot.Start - startHour
		}
	}

	remaining := int(float64(dailyLimit) - hoursUsedToday)
	if remaining < maxDur {
		maxDur = remaining
	}

	if maxDur < 1 {
		return 1
	}
	return maxDur
}

// HoursUsedOn sums the durations of the user's own bookings starting on the
// date. Feeds the daily-limit check; other users' bookings never count here.
func HoursUsedOn(bookings []models.Booking, date time.Time, userID string) float64 {
	var total float64
	for _, b := range bookings {
		if b.UserID != userID || !sameDay(b.StartTime, date) {
			continue
		}
		total += b.DurationHours()
	}
	return total
}

// FullyBookedDates scans [from, to] and marks every date that has at least
// one booking and no free start hour left. Both bounds are calendar dates
// and inclusive; a booking anywhere on the to date still counts. Keys are
// YYYY-MM-DD. Used for calendar highlighting only, not as a gating check.
func FullyBookedDates(bookings []models.Booking, from, to time.Time) map[string]bool {
	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		if b.StartTime.Before(rangeStart) || !b.StartTime.Before(rangeEnd) {
			continue
		}
		key := b.StartTime.Format("2006-01-02")
		byDate[key] = append(byDate[key], b)
	}

	full := make(map[string]bool, len(byDate))
	for key, dayBookings := range byDate {
		date, err := time.ParseInLocation("2006-01-02", key, from.Location())
		if err != nil {
			continue
		}
		full[key] = len(AvailableStartHours(dayBookings, date)) == 0
	}
	return full
}
