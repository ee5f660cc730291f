package api

import (
	"net/http"
	"time"

	"estudio/internal/models"
)

type adminBookingBody struct {
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func (s *Server) handleAdminListBookings(w http.ResponseWriter, r *http.Request, _ Identity) {
	from, ok := parseDateParam(r, "from")
	if !ok {
		writeError(w, http.StatusBadRequest, "from is required in YYYY-MM-DD format")
		return
	}
	to, ok := parseDateParam(r, "to")
	if !ok {
		writeError(w, http.StatusBadRequest, "to is required in YYYY-MM-DD format")
		return
	}

	// Grouped by day for the back-office calendar.
	days, err := s.bookings.DailyBookings(r.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleAdminCreateBooking(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body adminBookingBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking := &models.Booking{
		UserID:      body.UserID,
		Title:       body.Title,
		Description: body.Description,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	}
	if err := s.bookings.CreateBooking(r.Context(), booking); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleAdminUpdateBooking(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body adminBookingBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking := &models.Booking{
		ID:          r.PathValue("id"),
		UserID:      body.UserID,
		Title:       body.Title,
		Description: body.Description,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	}
	if err := s.bookings.UpdateBooking(r.Context(), booking); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleAdminDeleteBooking(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.bookings.DeleteBooking(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminListProfiles(w http.ResponseWriter, r *http.Request, _ Identity) {
	profiles, err := s.profiles.ListProfiles(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleAdminUpdateProfile(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body models.Profile
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.ID = r.PathValue("id")
	if err := s.profiles.UpdateProfile(r.Context(), &body); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAdminResetHours(w http.ResponseWriter, r *http.Request, _ Identity) {
	profile, err := s.profiles.ResetHours(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAdminAddHours(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		Hours int `json:"hours"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := s.profiles.AddHours(r.Context(), r.PathValue("id"), body.Hours)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAdminSetLimits(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		MonthlyHours int `json:"monthly_hours"`
		DailyHours   int `json:"daily_hours"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := s.profiles.SetLimits(r.Context(), r.PathValue("id"), body.MonthlyHours, body.DailyHours)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAdminSetRole(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.profiles.SetRole(r.Context(), r.PathValue("id"), body.Role); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
