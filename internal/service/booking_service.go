package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estudio/internal/domain"
	"estudio/internal/events"
	"estudio/internal/metrics"
	"estudio/internal/models"
	"estudio/internal/schedule"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingRequest is the member-facing creation payload: a calendar date plus
// a start hour on the operating grid.
type BookingRequest struct {
	UserID      string
	Title       string
	Description string
	Date        time.Time
	StartHour   int
	Duration    int
}

// HourOption is one free start hour and the longest booking it can carry for
// the requesting member.
type HourOption struct {
	Hour        int `json:"hour"`
	MaxDuration int `json:"max_duration"`
}

// DayAvailability is the availability view for one date.
type DayAvailability struct {
	Date        string       `json:"date"`
	Hours       []HourOption `json:"hours"`
	FullyBooked bool         `json:"fully_booked"`
}

type BookingService struct {
	bookings       domain.BookingRepository
	profiles       domain.ProfileRepository
	eventBus       domain.EventPublisher
	exports        domain.ExportQueue
	maxBookingDays int
	logger         *zerolog.Logger
}

func NewBookingService(bookings domain.BookingRepository, profiles domain.ProfileRepository, eventBus domain.EventPublisher, exports domain.ExportQueue, maxBookingDays int, logger *zerolog.Logger) *BookingService {
	if maxBookingDays <= 0 {
		maxBookingDays = 365
	}
	return &BookingService{
		bookings:       bookings,
		profiles:       profiles,
		eventBus:       eventBus,
		exports:        exports,
		maxBookingDays: maxBookingDays,
		logger:         logger,
	}
}

func (s *BookingService) ValidateBookingDate(date time.Time) error {
	if date.Before(time.Now().AddDate(0, 0, -1)) {
		return ErrPastDate
	}

	maxDate := time.Now().AddDate(0, 0, s.maxBookingDays)
	if date.After(maxDate) {
		return ErrDateTooFar
	}

	return nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func monthBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 1, 0)
}

// CreateMemberBooking runs the self-service checks in a fixed order and
// stops at the first failure: required fields, slot availability, daily
// quota, monthly quota. On success the monthly counter is bumped best-effort;
// a failed bump is logged, never rolled back.
func (s *BookingService) CreateMemberBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if req.Duration == 0 {
		req.Duration = 1
	}

	if req.UserID == "" || strings.TrimSpace(req.Title) == "" || req.Date.IsZero() ||
		req.StartHour < schedule.OpenHour || req.StartHour >= schedule.CloseHour ||
		req.Duration < 1 || req.Duration > schedule.MaxBookingHours {
		metrics.IncBookingRejected("missing_fields")
		return nil, schedule.ErrMissingFields
	}

	if err := s.ValidateBookingDate(req.Date); err != nil {
		metrics.IncBookingRejected("invalid_date")
		return nil, err
	}

	dayStart, dayEnd := dayBounds(req.Date)
	dayBookings, err := s.bookings.ListBookingsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("availability check: %w", err)
	}

	if !schedule.IsHourAvailable(dayBookings, req.Date, req.StartHour, req.Duration) {
		metrics.IncBookingRejected("slot_unavailable")
		return nil, schedule.ErrSlotUnavailable
	}

	profile, err := s.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}

	dailyLimit := models.DefaultDailyHoursLimit
	monthlyLimit := models.DefaultMonthlyHoursLimit
	usedThisMonth := 0.0
	if profile != nil {
		dailyLimit = profile.DailyHoursLimit
		monthlyLimit = profile.MonthlyHoursLimit
		usedThisMonth = profile.HoursUsedThisMonth
	}

	usedToday := schedule.HoursUsedOn(dayBookings, req.Date, req.UserID)
	if usedToday+float64(req.Duration) > float64(dailyLimit) {
		metrics.IncBookingRejected("daily_limit")
		return nil, fmt.Errorf("%w: %.0f of %d hours used today", schedule.ErrDailyLimitExceeded, usedToday, dailyLimit)
	}

	if usedThisMonth+float64(req.Duration) > float64(monthlyLimit) {
		metrics.IncBookingRejected("monthly_limit")
		return nil, fmt.Errorf("%w: %.1f of %d hours used", schedule.ErrMonthlyLimitExceeded, usedThisMonth, monthlyLimit)
	}

	startTime := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), req.StartHour, 0, 0, 0, req.Date.Location())
	booking := &models.Booking{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     startTime.Add(time.Duration(req.Duration) * time.Hour),
		CreatedAt:   time.Now(),
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	// Best effort. The booking already exists; a failed counter bump means
	// the member keeps slightly more allowance than they should.
	if err := s.profiles.IncrementHoursUsed(ctx, req.UserID, float64(req.Duration)); err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to increment monthly hours")
	}

	metrics.IncBookingCreated("member")
	s.publishEvent(events.EventBookingCreated, *booking, "member")
	s.enqueueExport(ctx, booking.StartTime)

	return booking, nil
}

// CreateBooking is the admin path: no grid, quota or availability gates,
// only the time-range invariant.
func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.UserID == "" || strings.TrimSpace(booking.Title) == "" {
		return schedule.ErrMissingFields
	}
	if !booking.EndTime.After(booking.StartTime) {
		return ErrInvalidTimeRange
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return err
	}

	metrics.IncBookingCreated("admin")
	s.publishEvent(events.EventBookingCreated, *booking, "admin")
	s.enqueueExport(ctx, booking.StartTime)
	return nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	if !booking.EndTime.After(booking.StartTime) {
		return ErrInvalidTimeRange
	}

	existing, err := s.bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBookingNotFound
	}

	if err := s.bookings.UpdateBooking(ctx, booking); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingUpdated, *booking, "admin")
	s.enqueueExport(ctx, booking.StartTime)
	return nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingDeleted, *booking, "admin")
	s.enqueueExport(ctx, booking.StartTime)
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

func (s *BookingService) ListBookingsBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return s.bookings.ListBookingsBetween(ctx, start, end)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string, from time.Time, limit int) ([]models.Booking, error) {
	return s.bookings.ListUserBookings(ctx, userID, from, limit)
}

// DailyBookings groups a range of bookings by YYYY-MM-DD for the week view.
func (s *BookingService) DailyBookings(ctx context.Context, start, end time.Time) (map[string][]models.Booking, error) {
	bookings, err := s.bookings.ListBookingsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	daily := make(map[string][]models.Booking)
	for _, b := range bookings {
		key := b.StartTime.Format("2006-01-02")
		daily[key] = append(daily[key], b)
	}
	return daily, nil
}

// Availability reports the free start hours on a date and, for the given
// member, the longest duration each hour can carry.
func (s *BookingService) Availability(ctx context.Context, date time.Time, userID string) (*DayAvailability, error) {
	dayStart, dayEnd := dayBounds(date)
	dayBookings, err := s.bookings.ListBookingsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	dailyLimit := models.DefaultDailyHoursLimit
	if userID != "" {
		profile, err := s.profiles.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			dailyLimit = profile.DailyHoursLimit
		}
	}
	usedToday := schedule.HoursUsedOn(dayBookings, date, userID)

	free := schedule.AvailableStartHours(dayBookings, date)
	hours := make([]HourOption, 0, len(free))
	for _, hour := range free {
		hours = append(hours, HourOption{
			Hour:        hour,
			MaxDuration: schedule.MaxDuration(dayBookings, date, hour, dailyLimit, usedToday),
		})
	}

	return &DayAvailability{
		Date:        dayStart.Format("2006-01-02"),
		Hours:       hours,
		FullyBooked: len(free) == 0 && len(schedule.BookedSlots(dayBookings, date)) > 0,
	}, nil
}

// FullyBookedDates marks the saturated dates in [from, to] for calendar
// highlighting.
func (s *BookingService) FullyBookedDates(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	bookings, err := s.bookings.ListBookingsBetween(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return schedule.FullyBookedDates(bookings, from, to), nil
}

// MonthUsage returns the hours a member booked inside the calendar month of
// the given date, computed from the bookings themselves rather than the
// profile counter.
func (s *BookingService) MonthUsage(ctx context.Context, userID string, date time.Time) (float64, error) {
	monthStart, monthEnd := monthBounds(date)
	bookings, err := s.bookings.ListBookingsBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, b := range bookings {
		if b.UserID == userID {
			total += b.DurationHours()
		}
	}
	return total, nil
}

func (s *BookingService) publishEvent(eventType string, booking models.Booking, origin string) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Title:     booking.Title,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Origin:    origin,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueExport(ctx context.Context, around time.Time) {
	if s.exports == nil {
		return
	}

	// Rebuild the workbook for the week containing the change.
	weekday := int(around.Weekday()+6) % 7
	weekStart := around.AddDate(0, 0, -weekday)
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, around.Location())

	if err := s.exports.EnqueueScheduleExport(ctx, weekStart, weekStart.AddDate(0, 0, 7)); err != nil {
		s.logger.Error().Err(err).Msg("schedule export enqueue error")
	}
}
