package service

import "errors"

var (
	ErrPastDate         = errors.New("booking date is in the past")
	ErrDateTooFar       = errors.New("booking date is too far in the future")
	ErrInvalidTimeRange = errors.New("booking must end after it starts")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotRecipient     = errors.New("only the recipient can mark a message read")
	ErrNoRecipient      = errors.New("no recipient available for the message")
	ErrNotLive          = errors.New("no live session is running")
	ErrEmptyMessage     = errors.New("message content is empty")
	ErrNameRequired     = errors.New("name is required")
	ErrUnknownRole      = errors.New("unknown role")
)
