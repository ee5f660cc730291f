package schedule

import "errors"

// Rejection reasons for self-service booking, checked in order: missing
// fields, slot availability, daily quota, monthly quota. First failure wins.
var (
	ErrMissingFields = errors.New("title, date and start hour are required")

	// ErrSlotUnavailable may mean another member took the slot after the
	// caller fetched availability; re-fetch and retry.
	ErrSlotUnavailable = errors.New("time slot is no longer available")

	ErrDailyLimitExceeded   = errors.New("daily hours limit exceeded")
	ErrMonthlyLimitExceeded = errors.New("monthly hours limit exceeded")
)
