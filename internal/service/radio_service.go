package service

import (
	"context"
	"time"

	"estudio/internal/domain"
	"estudio/internal/events"
	"estudio/internal/metrics"
	"estudio/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type RadioService struct {
	radio    domain.RadioRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewRadioService(radio domain.RadioRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *RadioService {
	return &RadioService{
		radio:    radio,
		eventBus: eventBus,
		logger:   logger,
	}
}

// StartLive puts a host on air. Listeners switch from the loop immediately.
func (s *RadioService) StartLive(ctx context.Context, hostName, title string) (*models.LiveSession, error) {
	session := &models.LiveSession{
		HostName:  hostName,
		Title:     title,
		IsLive:    true,
		StartedAt: time.Now(),
	}

	id, err := s.radio.UpsertLiveSession(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id

	metrics.SetRadioLive(true)
	s.publishState(ctx, events.EventRadioLiveChanged)
	s.logger.Info().Str("host", hostName).Msg("radio live session started")
	return session, nil
}

// SetCurrentTrack updates what the live host is playing.
func (s *RadioService) SetCurrentTrack(ctx context.Context, trackURL, trackName string) (*models.LiveSession, error) {
	session, err := s.radio.GetLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotLive
	}

	session.CurrentTrackURL = trackURL
	session.CurrentTrackName = trackName
	if _, err := s.radio.UpsertLiveSession(ctx, session); err != nil {
		return nil, err
	}

	s.publishState(ctx, events.EventRadioLiveChanged)
	return session, nil
}

// StopLive takes the host off air; playback falls back to the loop track.
func (s *RadioService) StopLive(ctx context.Context) error {
	session, err := s.radio.GetLiveSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	session.IsLive = false
	if _, err := s.radio.UpsertLiveSession(ctx, session); err != nil {
		return err
	}

	metrics.SetRadioLive(false)
	s.publishState(ctx, events.EventRadioLiveChanged)
	s.logger.Info().Msg("radio live session stopped")
	return nil
}

// SetLoopTrack replaces the between-sessions loop. Only one loop track is
// active at a time.
func (s *RadioService) SetLoopTrack(ctx context.Context, title, audioURL string) (*models.LoopTrack, error) {
	if err := s.radio.DeactivateLoopTracks(ctx); err != nil {
		return nil, err
	}

	track := &models.LoopTrack{
		ID:       uuid.NewString(),
		Title:    title,
		AudioURL: audioURL,
		IsActive: true,
	}
	if err := s.radio.CreateLoopTrack(ctx, track); err != nil {
		return nil, err
	}

	s.publishState(ctx, events.EventLoopTrackChanged)
	return track, nil
}

// RemoveLoopTrack soft-disables a loop track without deleting the upload.
func (s *RadioService) RemoveLoopTrack(ctx context.Context, id string) error {
	if err := s.radio.DeactivateLoopTrack(ctx, id); err != nil {
		return err
	}
	s.publishState(ctx, events.EventLoopTrackChanged)
	return nil
}

func (s *RadioService) GetActiveLoopTrack(ctx context.Context) (*models.LoopTrack, error) {
	return s.radio.GetActiveLoopTrack(ctx)
}

func (s *RadioService) ListSoundEffects(ctx context.Context) ([]models.SoundEffect, error) {
	return s.radio.ListSoundEffects(ctx)
}

func (s *RadioService) CreateSoundEffect(ctx context.Context, name, audioURL string) (*models.SoundEffect, error) {
	effect := &models.SoundEffect{
		ID:       uuid.NewString(),
		Name:     name,
		AudioURL: audioURL,
	}
	if err := s.radio.CreateSoundEffect(ctx, effect); err != nil {
		return nil, err
	}
	return effect, nil
}

func (s *RadioService) DeleteSoundEffect(ctx context.Context, id string) error {
	return s.radio.DeleteSoundEffect(ctx, id)
}

// NowPlaying reconciles the listener-facing state: a live session always
// wins, otherwise the active loop track plays on repeat, otherwise silence.
func (s *RadioService) NowPlaying(ctx context.Context) (*models.NowPlaying, error) {
	session, err := s.radio.GetLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return &models.NowPlaying{
			Live:      true,
			Title:     session.Title,
			HostName:  session.HostName,
			TrackURL:  session.CurrentTrackURL,
			TrackName: session.CurrentTrackName,
		}, nil
	}

	track, err := s.radio.GetActiveLoopTrack(ctx)
	if err != nil {
		return nil, err
	}
	if track != nil {
		return &models.NowPlaying{
			Live:      false,
			Loop:      true,
			TrackURL:  track.AudioURL,
			TrackName: track.Title,
		}, nil
	}

	return &models.NowPlaying{}, nil
}

func (s *RadioService) publishState(ctx context.Context, eventType string) {
	if s.eventBus == nil {
		return
	}

	state, err := s.NowPlaying(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("now-playing reconciliation failed for event")
		return
	}

	payload := events.RadioEventPayload{
		Live:      state.Live,
		Title:     state.Title,
		HostName:  state.HostName,
		TrackURL:  state.TrackURL,
		TrackName: state.TrackName,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("publish event error")
	}
}
