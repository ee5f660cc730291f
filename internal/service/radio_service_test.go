package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estudio/internal/events"
	"estudio/internal/models"
)

func newRadioService(radio *mockRadio, bus *recordingBus) *RadioService {
	logger := zerolog.Nop()
	return NewRadioService(radio, bus, &logger)
}

func TestStartLive_PublishesLiveState(t *testing.T) {
	radio := new(mockRadio)
	bus := &recordingBus{}
	svc := newRadioService(radio, bus)

	radio.On("UpsertLiveSession", mock.Anything, mock.MatchedBy(func(s *models.LiveSession) bool {
		return s.IsLive && s.HostName == "DJ Marta"
	})).Return("session-1", nil)
	radio.On("GetLiveSession", mock.Anything).Return(&models.LiveSession{
		ID: "session-1", HostName: "DJ Marta", Title: "Late Night", IsLive: true,
	}, nil)

	session, err := svc.StartLive(context.Background(), "DJ Marta", "Late Night")
	require.NoError(t, err)
	assert.Equal(t, "session-1", session.ID)

	require.Len(t, bus.events, 1)
	assert.Equal(t, events.EventRadioLiveChanged, bus.events[0].Type)
	payload := bus.events[0].Payload.(events.RadioEventPayload)
	assert.True(t, payload.Live)
	assert.Equal(t, "DJ Marta", payload.HostName)
}

func TestStopLive_FallsBackToLoop(t *testing.T) {
	radio := new(mockRadio)
	bus := &recordingBus{}
	svc := newRadioService(radio, bus)

	live := &models.LiveSession{ID: "session-1", IsLive: true}
	radio.On("GetLiveSession", mock.Anything).Return(live, nil).Once()
	radio.On("UpsertLiveSession", mock.Anything, mock.MatchedBy(func(s *models.LiveSession) bool {
		return !s.IsLive
	})).Return("session-1", nil)
	// Reconciliation after the stop: nobody live, loop active.
	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)
	radio.On("GetActiveLoopTrack", mock.Anything).Return(&models.LoopTrack{
		ID: "loop-1", Title: "Chill loop", AudioURL: "/media/loop.mp3", IsActive: true,
	}, nil)

	require.NoError(t, svc.StopLive(context.Background()))

	require.Len(t, bus.events, 1)
	payload := bus.events[0].Payload.(events.RadioEventPayload)
	assert.False(t, payload.Live)
	assert.Equal(t, "Chill loop", payload.TrackName)
}

func TestStopLive_NoopWhenNotLive(t *testing.T) {
	radio := new(mockRadio)
	bus := &recordingBus{}
	svc := newRadioService(radio, bus)

	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)

	require.NoError(t, svc.StopLive(context.Background()))
	assert.Empty(t, bus.events)
	radio.AssertNotCalled(t, "UpsertLiveSession", mock.Anything, mock.Anything)
}

func TestSetCurrentTrack_RequiresLiveSession(t *testing.T) {
	radio := new(mockRadio)
	svc := newRadioService(radio, &recordingBus{})

	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)

	_, err := svc.SetCurrentTrack(context.Background(), "/media/track.mp3", "demo")
	assert.ErrorIs(t, err, ErrNotLive)
}

func TestSetLoopTrack_DeactivatesOthersFirst(t *testing.T) {
	radio := new(mockRadio)
	bus := &recordingBus{}
	svc := newRadioService(radio, bus)

	radio.On("DeactivateLoopTracks", mock.Anything).Return(nil)
	radio.On("CreateLoopTrack", mock.Anything, mock.MatchedBy(func(tr *models.LoopTrack) bool {
		return tr.IsActive && tr.Title == "Jazz loop"
	})).Return(nil)
	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)
	radio.On("GetActiveLoopTrack", mock.Anything).Return(&models.LoopTrack{
		Title: "Jazz loop", AudioURL: "/media/jazz.mp3", IsActive: true,
	}, nil)

	track, err := svc.SetLoopTrack(context.Background(), "Jazz loop", "/media/jazz.mp3")
	require.NoError(t, err)
	assert.NotEmpty(t, track.ID)

	require.Len(t, bus.events, 1)
	assert.Equal(t, events.EventLoopTrackChanged, bus.events[0].Type)
	radio.AssertExpectations(t)
}

func TestNowPlaying_LiveWins(t *testing.T) {
	radio := new(mockRadio)
	svc := newRadioService(radio, &recordingBus{})

	radio.On("GetLiveSession", mock.Anything).Return(&models.LiveSession{
		IsLive: true, HostName: "DJ Marta", CurrentTrackName: "on-air cut",
	}, nil)

	state, err := svc.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Live)
	assert.False(t, state.Loop)
	assert.Equal(t, "on-air cut", state.TrackName)
	// The loop is never consulted while live.
	radio.AssertNotCalled(t, "GetActiveLoopTrack", mock.Anything)
}

func TestNowPlaying_LoopFallback(t *testing.T) {
	radio := new(mockRadio)
	svc := newRadioService(radio, &recordingBus{})

	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)
	radio.On("GetActiveLoopTrack", mock.Anything).Return(&models.LoopTrack{
		Title: "Chill loop", AudioURL: "/media/loop.mp3",
	}, nil)

	state, err := svc.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Live)
	assert.True(t, state.Loop)
	assert.Equal(t, "/media/loop.mp3", state.TrackURL)
}

func TestNowPlaying_Silence(t *testing.T) {
	radio := new(mockRadio)
	svc := newRadioService(radio, &recordingBus{})

	radio.On("GetLiveSession", mock.Anything).Return(nil, nil)
	radio.On("GetActiveLoopTrack", mock.Anything).Return(nil, nil)

	state, err := svc.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Live)
	assert.False(t, state.Loop)
	assert.Empty(t, state.TrackURL)
}

func TestSoundEffects(t *testing.T) {
	radio := new(mockRadio)
	svc := newRadioService(radio, &recordingBus{})

	radio.On("CreateSoundEffect", mock.Anything, mock.MatchedBy(func(e *models.SoundEffect) bool {
		return e.Name == "Airhorn" && e.ID != ""
	})).Return(nil)

	effect, err := svc.CreateSoundEffect(context.Background(), "Airhorn", "/media/horn.mp3")
	require.NoError(t, err)
	assert.NotEmpty(t, effect.ID)

	radio.On("DeleteSoundEffect", mock.Anything, effect.ID).Return(nil)
	assert.NoError(t, svc.DeleteSoundEffect(context.Background(), effect.ID))
}
