// Package api exposes the studio backend over HTTP: public catalog and
// radio endpoints, member booking endpoints, and the admin back office,
// with API-key auth and per-key rate limiting in front.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"estudio/internal/config"
	"estudio/internal/domain"
	"estudio/internal/metrics"
	"estudio/internal/service"
	"estudio/internal/worker"

	"github.com/rs/zerolog"
)

type Server struct {
	cfg      config.Config
	bookings *service.BookingService
	profiles *service.ProfileService
	radio    *service.RadioService
	messages *service.MessageService
	catalog  *service.CatalogService
	storage  domain.ObjectStorage
	exporter worker.ScheduleExporter
	stream   domain.EventStream
	auth     *Auth
	logger   *zerolog.Logger
	server   *http.Server
}

type Deps struct {
	Bookings *service.BookingService
	Profiles *service.ProfileService
	Radio    *service.RadioService
	Messages *service.MessageService
	Catalog  *service.CatalogService
	Storage  domain.ObjectStorage
	Exporter worker.ScheduleExporter
	Stream   domain.EventStream
}

func NewServer(cfg config.Config, deps Deps, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		bookings: deps.Bookings,
		profiles: deps.Profiles,
		radio:    deps.Radio,
		messages: deps.Messages,
		catalog:  deps.Catalog,
		storage:  deps.Storage,
		exporter: deps.Exporter,
		stream:   deps.Stream,
		auth:     NewAuth(cfg.Auth, cfg.RateLimit),
		logger:   logger,
	}

	handler := s.loggingMiddleware(metricsMiddleware(s.auth.Wrap(s.routes())))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Public site surface.
	mux.HandleFunc("GET /api/v1/artists", s.handlePublicArtists)
	mux.HandleFunc("GET /api/v1/highlights", s.handlePublicHighlights)
	mux.HandleFunc("GET /api/v1/radio/now-playing", s.handleNowPlaying)
	mux.Handle("GET /media/", http.StripPrefix("/media/",
		http.FileServer(http.Dir(s.cfg.Storage.MediaPath))))

	// Member surface.
	mux.HandleFunc("GET /api/v1/availability", s.auth.RequireUser(s.handleAvailability))
	mux.HandleFunc("GET /api/v1/availability/fully-booked", s.auth.RequireUser(s.handleFullyBooked))
	mux.HandleFunc("POST /api/v1/bookings", s.auth.RequireUser(s.handleCreateBooking))
	mux.HandleFunc("GET /api/v1/bookings", s.auth.RequireUser(s.handleOwnBookings))
	mux.HandleFunc("GET /api/v1/profile", s.auth.RequireUser(s.handleOwnProfile))
	mux.HandleFunc("GET /api/v1/messages", s.auth.RequireUser(s.handleListMessages))
	mux.HandleFunc("POST /api/v1/messages", s.auth.RequireUser(s.handleSendMessage))
	mux.HandleFunc("POST /api/v1/messages/{id}/read", s.auth.RequireUser(s.handleMarkMessageRead))
	mux.HandleFunc("GET /api/v1/messages/unread-count", s.auth.RequireUser(s.handleUnreadCount))

	// Admin back office.
	mux.HandleFunc("GET /api/v1/admin/bookings", s.auth.RequireAdmin(s.handleAdminListBookings))
	mux.HandleFunc("POST /api/v1/admin/bookings", s.auth.RequireAdmin(s.handleAdminCreateBooking))
	mux.HandleFunc("PUT /api/v1/admin/bookings/{id}", s.auth.RequireAdmin(s.handleAdminUpdateBooking))
	mux.HandleFunc("DELETE /api/v1/admin/bookings/{id}", s.auth.RequireAdmin(s.handleAdminDeleteBooking))

	mux.HandleFunc("GET /api/v1/admin/profiles", s.auth.RequireAdmin(s.handleAdminListProfiles))
	mux.HandleFunc("PUT /api/v1/admin/profiles/{id}", s.auth.RequireAdmin(s.handleAdminUpdateProfile))
	mux.HandleFunc("POST /api/v1/admin/profiles/{id}/reset-hours", s.auth.RequireAdmin(s.handleAdminResetHours))
	mux.HandleFunc("POST /api/v1/admin/profiles/{id}/add-hours", s.auth.RequireAdmin(s.handleAdminAddHours))
	mux.HandleFunc("POST /api/v1/admin/profiles/{id}/limits", s.auth.RequireAdmin(s.handleAdminSetLimits))
	mux.HandleFunc("POST /api/v1/admin/profiles/{id}/role", s.auth.RequireAdmin(s.handleAdminSetRole))

	mux.HandleFunc("POST /api/v1/admin/radio/live/start", s.auth.RequireAdmin(s.handleRadioStartLive))
	mux.HandleFunc("POST /api/v1/admin/radio/live/track", s.auth.RequireAdmin(s.handleRadioSetTrack))
	mux.HandleFunc("POST /api/v1/admin/radio/live/stop", s.auth.RequireAdmin(s.handleRadioStopLive))
	mux.HandleFunc("POST /api/v1/admin/radio/loop", s.auth.RequireAdmin(s.handleRadioSetLoop))
	mux.HandleFunc("DELETE /api/v1/admin/radio/loop/{id}", s.auth.RequireAdmin(s.handleRadioRemoveLoop))
	mux.HandleFunc("GET /api/v1/admin/radio/effects", s.auth.RequireAdmin(s.handleRadioListEffects))
	mux.HandleFunc("POST /api/v1/admin/radio/effects", s.auth.RequireAdmin(s.handleRadioCreateEffect))
	mux.HandleFunc("DELETE /api/v1/admin/radio/effects/{id}", s.auth.RequireAdmin(s.handleRadioDeleteEffect))

	mux.HandleFunc("GET /api/v1/admin/artists", s.auth.RequireAdmin(s.handleAdminListArtists))
	mux.HandleFunc("POST /api/v1/admin/artists", s.auth.RequireAdmin(s.handleAdminCreateArtist))
	mux.HandleFunc("PUT /api/v1/admin/artists/{id}", s.auth.RequireAdmin(s.handleAdminUpdateArtist))
	mux.HandleFunc("DELETE /api/v1/admin/artists/{id}", s.auth.RequireAdmin(s.handleAdminDeleteArtist))
	mux.HandleFunc("GET /api/v1/admin/productions", s.auth.RequireAdmin(s.handleAdminListProductions))
	mux.HandleFunc("POST /api/v1/admin/productions", s.auth.RequireAdmin(s.handleAdminCreateProduction))
	mux.HandleFunc("PUT /api/v1/admin/productions/{id}", s.auth.RequireAdmin(s.handleAdminUpdateProduction))
	mux.HandleFunc("DELETE /api/v1/admin/productions/{id}", s.auth.RequireAdmin(s.handleAdminDeleteProduction))
	mux.HandleFunc("GET /api/v1/admin/highlights", s.auth.RequireAdmin(s.handleAdminListHighlights))
	mux.HandleFunc("POST /api/v1/admin/highlights", s.auth.RequireAdmin(s.handleAdminCreateHighlight))
	mux.HandleFunc("PUT /api/v1/admin/highlights/{id}", s.auth.RequireAdmin(s.handleAdminUpdateHighlight))
	mux.HandleFunc("DELETE /api/v1/admin/highlights/{id}", s.auth.RequireAdmin(s.handleAdminDeleteHighlight))

	mux.HandleFunc("POST /api/v1/admin/uploads", s.auth.RequireAdmin(s.handleUpload))
	mux.HandleFunc("GET /api/v1/admin/dashboard", s.auth.RequireAdmin(s.handleDashboard))
	mux.HandleFunc("GET /api/v1/admin/exports/schedule", s.auth.RequireAdmin(s.handleExportSchedule))
	mux.HandleFunc("GET /api/v1/admin/events/{topic}", s.auth.RequireAdmin(s.handleEventFeed))

	return mux
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the full middleware chain, used directly in tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.IncHTTP(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE streaming working through the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
