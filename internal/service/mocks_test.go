package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"estudio/internal/models"
)

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookings) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookings) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookings) DeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBookings) ListBookingsBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBookings) ListUserBookings(ctx context.Context, userID string, from time.Time, limit int) ([]models.Booking, error) {
	args := m.Called(ctx, userID, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBookings) CountBookings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *mockProfiles) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}
func (m *mockProfiles) CreateProfile(ctx context.Context, p *models.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProfiles) UpdateProfile(ctx context.Context, p *models.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProfiles) IncrementHoursUsed(ctx context.Context, id string, delta float64) error {
	return m.Called(ctx, id, delta).Error(0)
}
func (m *mockProfiles) GetRole(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *mockProfiles) SetRole(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}
func (m *mockProfiles) ListAdminIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockRadio struct {
	mock.Mock
}

func (m *mockRadio) GetLiveSession(ctx context.Context) (*models.LiveSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LiveSession), args.Error(1)
}
func (m *mockRadio) UpsertLiveSession(ctx context.Context, s *models.LiveSession) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}
func (m *mockRadio) GetActiveLoopTrack(ctx context.Context) (*models.LoopTrack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoopTrack), args.Error(1)
}
func (m *mockRadio) CreateLoopTrack(ctx context.Context, t *models.LoopTrack) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRadio) DeactivateLoopTracks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockRadio) DeactivateLoopTrack(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRadio) ListSoundEffects(ctx context.Context) ([]models.SoundEffect, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SoundEffect), args.Error(1)
}
func (m *mockRadio) CreateSoundEffect(ctx context.Context, e *models.SoundEffect) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockRadio) DeleteSoundEffect(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessages struct {
	mock.Mock
}

func (m *mockMessages) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}
func (m *mockMessages) ListMessagesForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}
func (m *mockMessages) CreateMessage(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *mockMessages) MarkMessageRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockMessages) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListArtists(ctx context.Context) ([]models.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}
func (m *mockCatalog) CreateArtist(ctx context.Context, a *models.Artist) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockCatalog) UpdateArtist(ctx context.Context, a *models.Artist) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockCatalog) DeleteArtist(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCatalog) ListProductions(ctx context.Context) ([]models.Production, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Production), args.Error(1)
}
func (m *mockCatalog) ListRecentProductions(ctx context.Context, limit int) ([]models.Production, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Production), args.Error(1)
}
func (m *mockCatalog) CreateProduction(ctx context.Context, p *models.Production) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockCatalog) UpdateProduction(ctx context.Context, p *models.Production) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockCatalog) DeleteProduction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCatalog) CountProductions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockCatalog) CountProductionsByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}
func (m *mockCatalog) CountArtists(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockCatalog) ListHighlights(ctx context.Context) ([]models.Highlight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Highlight), args.Error(1)
}
func (m *mockCatalog) CreateHighlight(ctx context.Context, h *models.Highlight) error {
	return m.Called(ctx, h).Error(0)
}
func (m *mockCatalog) UpdateHighlight(ctx context.Context, h *models.Highlight) error {
	return m.Called(ctx, h).Error(0)
}
func (m *mockCatalog) DeleteHighlight(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCatalog) MaxHighlightPosition(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockExports struct {
	mock.Mock
}

func (m *mockExports) EnqueueScheduleExport(ctx context.Context, start, end time.Time) error {
	return m.Called(ctx, start, end).Error(0)
}

// recordingBus captures published events for assertions.
type recordingBus struct {
	events []recordedEvent
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

func (b *recordingBus) PublishJSON(eventType string, payload interface{}) error {
	b.events = append(b.events, recordedEvent{Type: eventType, Payload: payload})
	return nil
}
