package domain

import (
	"context"
	"time"

	"estudio/internal/models"
)

// BookingRepository is the sole way booking state is read or written.
// It offers no conditional-write primitive: two members racing on the same
// slot can both pass the availability check. The service layer documents
// and accepts that race for single-studio volume.
type BookingRepository interface {
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id string) error
	ListBookingsBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	ListUserBookings(ctx context.Context, userID string, from time.Time, limit int) ([]models.Booking, error)
	CountBookings(ctx context.Context) (int, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	// IncrementHoursUsed adds delta to hours_used_this_month in one
	// statement. Not transactional with booking creation.
	IncrementHoursUsed(ctx context.Context, id string, delta float64) error
	GetRole(ctx context.Context, userID string) (string, error)
	SetRole(ctx context.Context, userID, role string) error
	ListAdminIDs(ctx context.Context) ([]string, error)
}

type RadioRepository interface {
	GetLiveSession(ctx context.Context) (*models.LiveSession, error)
	UpsertLiveSession(ctx context.Context, session *models.LiveSession) (string, error)
	GetActiveLoopTrack(ctx context.Context) (*models.LoopTrack, error)
	CreateLoopTrack(ctx context.Context, track *models.LoopTrack) error
	DeactivateLoopTracks(ctx context.Context) error
	DeactivateLoopTrack(ctx context.Context, id string) error
	ListSoundEffects(ctx context.Context) ([]models.SoundEffect, error)
	CreateSoundEffect(ctx context.Context, effect *models.SoundEffect) error
	DeleteSoundEffect(ctx context.Context, id string) error
}

type MessageRepository interface {
	GetMessage(ctx context.Context, id string) (*models.Message, error)
	ListMessagesForUser(ctx context.Context, userID string, limit int) ([]models.Message, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	MarkMessageRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}

type CatalogRepository interface {
	ListArtists(ctx context.Context) ([]models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, artist *models.Artist) error
	DeleteArtist(ctx context.Context, id string) error

	ListProductions(ctx context.Context) ([]models.Production, error)
	ListRecentProductions(ctx context.Context, limit int) ([]models.Production, error)
	CreateProduction(ctx context.Context, production *models.Production) error
	UpdateProduction(ctx context.Context, production *models.Production) error
	DeleteProduction(ctx context.Context, id string) error
	CountProductions(ctx context.Context) (int, error)
	CountProductionsByStatus(ctx context.Context, status string) (int, error)
	CountArtists(ctx context.Context) (int, error)

	ListHighlights(ctx context.Context) ([]models.Highlight, error)
	CreateHighlight(ctx context.Context, highlight *models.Highlight) error
	UpdateHighlight(ctx context.Context, highlight *models.Highlight) error
	DeleteHighlight(ctx context.Context, id string) error
	MaxHighlightPosition(ctx context.Context) (int, error)
}

// ObjectStorage stores uploaded media and returns a public URL for it.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// EventPublisher is the in-process domain event sink.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// StreamEvent is a serialized event delivered to realtime subscribers.
type StreamEvent struct {
	Topic     string
	Payload   []byte
	CreatedAt time.Time
}

// EventStream is the transport-decoupled realtime push interface. Publish
// fans an event out to every active subscriber of the topic; Subscribe
// returns a receive channel and an unsubscribe func that closes it.
type EventStream interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (<-chan StreamEvent, func(), error)
}

// Notifier pushes booking notifications to the studio staff channel.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, booking models.Booking, memberName string) error
}

// ExportQueue schedules background rebuilds of the schedule workbook.
type ExportQueue interface {
	EnqueueScheduleExport(ctx context.Context, start, end time.Time) error
}
