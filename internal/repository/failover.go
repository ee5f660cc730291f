package repository

import (
	"context"
	"sync/atomic"
	"time"

	"estudio/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverEventStream publishes through the primary stream until it errors,
// then routes events through the in-process fallback and probes the primary
// again after a cooldown. A subscriber listens on both streams so it keeps
// receiving no matter which side the publisher is using.
type FailoverEventStream struct {
	primary  domain.EventStream
	fallback domain.EventStream
	logger   *zerolog.Logger
	isDown   atomic.Bool
	lastFail atomic.Int64
}

func NewFailoverEventStream(primary, fallback domain.EventStream, logger *zerolog.Logger) *FailoverEventStream {
	return &FailoverEventStream{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverEventStream) markDown(err error) {
	s.logger.Error().Err(err).Msg("Primary event stream failed, falling back to memory")
	s.isDown.Store(true)
	s.lastFail.Store(time.Now().UnixNano())
}

func (s *FailoverEventStream) shouldRetryPrimary() bool {
	return time.Since(time.Unix(0, s.lastFail.Load())) > recoveryInterval
}

func (s *FailoverEventStream) Publish(ctx context.Context, topic string, payload []byte) error {
	if !s.isDown.Load() || s.shouldRetryPrimary() {
		err := s.primary.Publish(ctx, topic, payload)
		if err == nil {
			if s.isDown.Swap(false) {
				s.logger.Info().Msg("Primary event stream recovered")
			}
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Publish(ctx, topic, payload)
}

func (s *FailoverEventStream) Subscribe(ctx context.Context, topic string) (<-chan domain.StreamEvent, func(), error) {
	fallbackCh, fallbackCancel, err := s.fallback.Subscribe(ctx, topic)
	if err != nil {
		return nil, nil, err
	}

	primaryCh, primaryCancel, err := s.primary.Subscribe(ctx, topic)
	if err != nil {
		// Degraded but usable: local events still flow.
		s.markDown(err)
		return fallbackCh, fallbackCancel, nil
	}

	out := make(chan domain.StreamEvent, 16)
	done := make(chan struct{})

	forward := func(ch <-chan domain.StreamEvent) {
		for {
			select {
			case <-done:
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- event:
				case <-done:
					return
				}
			}
		}
	}
	go forward(primaryCh)
	go forward(fallbackCh)

	var once atomic.Bool
	cancel := func() {
		if once.Swap(true) {
			return
		}
		close(done)
		primaryCancel()
		fallbackCancel()
	}
	return out, cancel, nil
}
