package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"estudio/internal/models"
	"estudio/internal/service"
)

const dateLayout = "2006-01-02"

func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func parseLimitParam(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// --- public surface ---

func (s *Server) handlePublicArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.catalog.ActiveArtists(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

func (s *Server) handlePublicHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := s.catalog.ActiveHighlights(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"highlights": highlights})
}

func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	state, err := s.radio.NowPlaying(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// --- member surface ---

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request, identity Identity) {
	date, ok := parseDateParam(r, "date")
	if !ok {
		writeError(w, http.StatusBadRequest, "date is required in YYYY-MM-DD format")
		return
	}

	availability, err := s.bookings.Availability(r.Context(), date, identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (s *Server) handleFullyBooked(w http.ResponseWriter, r *http.Request, _ Identity) {
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

	dates, err := s.bookings.FullyBookedDates(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fully_booked": dates})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request, identity Identity) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		StartHour   int    `json:"start_hour"`
		Duration    int    `json:"duration"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var date time.Time
	if body.Date != "" {
		parsed, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	booking, err := s.bookings.CreateMemberBooking(r.Context(), service.BookingRequest{
		UserID:      identity.UserID,
		Title:       body.Title,
		Description: body.Description,
		Date:        date,
		StartHour:   body.StartHour,
		Duration:    body.Duration,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleOwnBookings(w http.ResponseWriter, r *http.Request, identity Identity) {
	from, ok := parseDateParam(r, "from")
	if !ok {
		from = time.Now().Truncate(24 * time.Hour)
	}

	bookings, err := s.bookings.ListUserBookings(r.Context(), identity.UserID, from, parseLimitParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleOwnProfile(w http.ResponseWriter, r *http.Request, identity Identity) {
	profile, err := s.profiles.EnsureProfile(r.Context(), identity.UserID, identity.Name, "")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	usage, err := s.bookings.MonthUsage(r.Context(), identity.UserID, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile":          profile,
		"month_used_hours": usage,
	})
}

// --- messages ---

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request, identity Identity) {
	messages, err := s.messages.ListForUser(r.Context(), identity.UserID, parseLimitParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, identity Identity) {
	var body struct {
		RecipientID string `json:"recipient_id"`
		Subject     string `json:"subject"`
		Content     string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	message, err := s.messages.Send(r.Context(), identity.UserID, identity.Role, body.RecipientID, body.Subject, body.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (s *Server) handleMarkMessageRead(w http.ResponseWriter, r *http.Request, identity Identity) {
	if err := s.messages.MarkRead(r.Context(), identity.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request, identity Identity) {
	count, err := s.messages.UnreadCount(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
