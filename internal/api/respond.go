package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"estudio/internal/schedule"
	"estudio/internal/service"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeServiceError maps domain errors onto HTTP statuses. Unknown errors
// become 500 with a generic message; the detail stays in the server log.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrMissingFields),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrPastDate),
		errors.Is(err, service.ErrDateTooFar),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrNoRecipient),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrSlotUnavailable),
		errors.Is(err, schedule.ErrDailyLimitExceeded),
		errors.Is(err, schedule.ErrMonthlyLimitExceeded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrNotLive):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotRecipient):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
