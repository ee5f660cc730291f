package schedule

import (
	"testing"
	"time"

	"estudio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(userID string, day time.Time, startHour, duration int) models.Booking {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, day.Location())
	return models.Booking{
		ID:        "b-" + userID,
		UserID:    userID,
		Title:     "session",
		StartTime: start,
		EndTime:   start.Add(time.Duration(duration) * time.Hour),
	}
}

var testDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

func TestStartHours(t *testing.T) {
	hours := StartHours()
	require.Len(t, hours, 12)
	assert.Equal(t, 8, hours[0])
	assert.Equal(t, 19, hours[len(hours)-1])
}

func TestBookedSlots(t *testing.T) {
	bookings := []models.Booking{
		booking("u1", testDay, 9, 2),
		booking("u2", testDay.AddDate(0, 0, 1), 10, 1), // other day, ignored
	}

	slots := BookedSlots(bookings, testDay)
	require.Len(t, slots, 1)
	assert.Equal(t, Slot{Start: 9, End: 11}, slots[0])
}

func TestBookedSlots_OutsideOperatingWindow(t *testing.T) {
	// An admin-made booking before 08:00 is still represented and still
	// blocks overlapping hours.
	bookings := []models.Booking{booking("u1", testDay, 6, 3)}

	slots := BookedSlots(bookings, testDay)
	require.Len(t, slots, 1)
	assert.Equal(t, Slot{Start: 6, End: 9}, slots[0])

	assert.False(t, IsHourAvailable(bookings, testDay, 8, 1))
	assert.True(t, IsHourAvailable(bookings, testDay, 9, 1))
}

func TestIsHourAvailable_Overlap(t *testing.T) {
	// Scenario: existing booking 9-11.
	bookings := []models.Booking{booking("u1", testDay, 9, 2)}

	assert.False(t, IsHourAvailable(bookings, testDay, 9, 1))
	assert.False(t, IsHourAvailable(bookings, testDay, 10, 1))
	assert.True(t, IsHourAvailable(bookings, testDay, 11, 1), "boundary adjacency: end at 11 does not block start at 11")
	assert.True(t, IsHourAvailable(bookings, testDay, 8, 1))

	// Multi-hour candidate reaching into the slot.
	assert.False(t, IsHourAvailable(bookings, testDay, 8, 2))
	// Candidate fully covering the slot.
	assert.False(t, IsHourAvailable(bookings, testDay, 8, 4))
}

func TestIsHourAvailable_CandidateEndTouchesBookedStart(t *testing.T) {
	// Candidate 10:00 for 3h against a 12-13 booking: endHour 13 crosses
	// the booked start at 12.
	bookings := []models.Booking{booking("u1", testDay, 12, 1)}

	assert.False(t, IsHourAvailable(bookings, testDay, 10, 3))
	assert.True(t, IsHourAvailable(bookings, testDay, 10, 2))
}

func TestAvailableStartHours(t *testing.T) {
	bookings := []models.Booking{booking("u1", testDay, 9, 2)}

	available := AvailableStartHours(bookings, testDay)
	expected := []int{8, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	assert.Equal(t, expected, available)
}

func TestAvailableStartHours_EmptyDay(t *testing.T) {
	available := AvailableStartHours(nil, testDay)
	assert.Equal(t, StartHours(), available)
}

func TestAvailableStartHours_FullyBooked(t *testing.T) {
	var bookings []models.Booking
	for h := 8; h < 20; h++ {
		bookings = append(bookings, booking("u1", testDay, h, 1))
	}
	assert.Empty(t, AvailableStartHours(bookings, testDay))
}

func TestMaxDuration_CapAtFour(t *testing.T) {
	// Empty day, no daily usage: the booking cap binds.
	got := MaxDuration(nil, testDay, 8, 8, 0)
	assert.Equal(t, 4, got)
}

func TestMaxDuration_NextSlotBinds(t *testing.T) {
	bookings := []models.Booking{booking("u1", testDay, 12, 1)}

	assert.Equal(t, 2, MaxDuration(bookings, testDay, 10, 8, 0))
	// Tightest later slot wins, not the first found.
	bookings = append(bookings, booking("u2", testDay, 11, 1))
	assert.Equal(t, 1, MaxDuration(bookings, testDay, 10, 8, 0))
}

func TestMaxDuration_DailyRemainderBinds(t *testing.T) {
	// Scenario: limit 4, 3h already used, open day: only 1h remains.
	got := MaxDuration(nil, testDay, 14, 4, 3)
	assert.Equal(t, 1, got)
}

func TestMaxDuration_NeverBelowOne(t *testing.T) {
	// Exhausted daily allowance still yields 1; the quota check at
	// confirmation rejects the booking.
	got := MaxDuration(nil, testDay, 14, 4, 4)
	assert.Equal(t, 1, got)

	got = MaxDuration(nil, testDay, 14, 4, 6)
	assert.Equal(t, 1, got)
}

func TestHoursUsedOn(t *testing.T) {
	bookings := []models.Booking{
		booking("u1", testDay, 8, 2),
		booking("u1", testDay, 14, 1),
		booking("u2", testDay, 11, 3),                 // other user
		booking("u1", testDay.AddDate(0, 0, 1), 8, 4), // other day
	}

	assert.InDelta(t, 3.0, HoursUsedOn(bookings, testDay, "u1"), 0.001)
	assert.InDelta(t, 3.0, HoursUsedOn(bookings, testDay, "u2"), 0.001)
	assert.Zero(t, HoursUsedOn(bookings, testDay, "u3"))
}

func TestFullyBookedDates(t *testing.T) {
	full := testDay
	partial := testDay.AddDate(0, 0, 1)

	var bookings []models.Booking
	for h := 8; h < 20; h++ {
		bookings = append(bookings, booking("u1", full, h, 1))
	}
	bookings = append(bookings, booking("u2", partial, 9, 2))

	from := testDay.AddDate(0, 0, -1)
	to := testDay.AddDate(0, 0, 7)
	got := FullyBookedDates(bookings, from, to)

	assert.True(t, got[full.Format("2006-01-02")])
	assert.False(t, got[partial.Format("2006-01-02")])
	// Dates without bookings are absent entirely.
	_, ok := got[from.Format("2006-01-02")]
	assert.False(t, ok)
}

func TestFullyBookedDates_SaturatedLastDayOfRange(t *testing.T) {
	// Range bounds are bare dates (midnight); bookings on the final day
	// start at 08:00+ and must still count toward it.
	last := testDay.AddDate(0, 0, 6)

	var bookings []models.Booking
	for h := 8; h < 20; h++ {
		bookings = append(bookings, booking("u1", last, h, 1))
	}

	got := FullyBookedDates(bookings, testDay, last)
	assert.True(t, got[last.Format("2006-01-02")])

	// First day of the range behaves the same.
	got = FullyBookedDates(bookings, last, last.AddDate(0, 0, 6))
	assert.True(t, got[last.Format("2006-01-02")])
}

func TestFullyBookedDates_RangeFilter(t *testing.T) {
	outside := testDay.AddDate(0, 1, 0)
	bookings := []models.Booking{booking("u1", outside, 9, 1)}

	got := FullyBookedDates(bookings, testDay, testDay.AddDate(0, 0, 7))
	assert.Empty(t, got)
}

func TestNonOverlapProperty(t *testing.T) {
	// Any hour intersecting an existing booking must be reported busy for
	// a second user, across all durations up to the cap.
	bookings := []models.Booking{booking("u1", testDay, 10, 2)}

	for _, start := range StartHours() {
		for dur := 1; dur <= MaxBookingHours; dur++ {
			end := start + dur
			overlaps := start < 12 && end > 10
			assert.Equalf(t, !overlaps, IsHourAvailable(bookings, testDay, start, dur),
				"start=%d dur=%d", start, dur)
		}
	}
}
