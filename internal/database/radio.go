package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estudio/internal/models"

	"github.com/google/uuid"
)

func scanLiveSession(row interface{ Scan(...any) error }) (*models.LiveSession, error) {
	var s models.LiveSession
	var startedAt sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.HostName,
		&s.Title,
		&s.IsLive,
		&s.CurrentTrackURL,
		&s.CurrentTrackName,
		&startedAt,
	)
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		s.StartedAt = startedAt.Time
	}
	return &s, nil
}

// GetLiveSession returns the current on-air session, or nil when nobody is
// live.
func (db *DB) GetLiveSession(ctx context.Context) (*models.LiveSession, error) {
	query := `SELECT id, host_name, title, is_live, current_track_url, current_track_name, started_at
	          FROM radio_live_session WHERE is_live = 1 LIMIT 1`

	session, err := scanLiveSession(db.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live session: %w", err)
	}
	return session, nil
}

// UpsertLiveSession updates the session row in place when an identifier is
// present (or a live row exists), otherwise inserts a fresh one. Returns the
// session id.
func (db *DB) UpsertLiveSession(ctx context.Context, session *models.LiveSession) (string, error) {
	if session.ID == "" {
		existing, err := db.GetLiveSession(ctx)
		if err != nil {
			return "", err
		}
		if existing != nil {
			session.ID = existing.ID
		}
	}

	var startedAt any
	if !session.StartedAt.IsZero() {
		startedAt = session.StartedAt
	}

	if session.ID != "" {
		query := `UPDATE radio_live_session
		          SET host_name = ?, title = ?, is_live = ?,
		              current_track_url = ?, current_track_name = ?, started_at = ?
		          WHERE id = ?`
		result, err := db.db.ExecContext(ctx, query,
			session.HostName,
			session.Title,
			session.IsLive,
			session.CurrentTrackURL,
			session.CurrentTrackName,
			startedAt,
			session.ID,
		)
		if err != nil {
			return "", fmt.Errorf("failed to update live session: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n > 0 {
			return session.ID, nil
		}
		// Fall through to insert when the id no longer exists.
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	query := `INSERT INTO radio_live_session (id, host_name, title, is_live, current_track_url, current_track_name, started_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		session.ID,
		session.HostName,
		session.Title,
		session.IsLive,
		session.CurrentTrackURL,
		session.CurrentTrackName,
		startedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert live session: %w", err)
	}
	return session.ID, nil
}

// GetActiveLoopTrack returns the track playing on repeat between live
// sessions, or nil when none is configured.
func (db *DB) GetActiveLoopTrack(ctx context.Context) (*models.LoopTrack, error) {
	query := `SELECT id, title, audio_url, is_active, created_at
	          FROM radio_loop_track WHERE is_active = 1 LIMIT 1`

	var t models.LoopTrack
	err := db.db.QueryRowContext(ctx, query).Scan(&t.ID, &t.Title, &t.AudioURL, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loop track: %w", err)
	}
	return &t, nil
}

func (db *DB) CreateLoopTrack(ctx context.Context, track *models.LoopTrack) error {
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now()
	}

	query := `INSERT INTO radio_loop_track (id, title, audio_url, is_active, created_at)
	          VALUES (?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query, track.ID, track.Title, track.AudioURL, track.IsActive, track.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loop track: %w", err)
	}
	return nil
}

// DeactivateLoopTracks soft-disables every active loop track; at most one
// is active at a time by convention.
func (db *DB) DeactivateLoopTracks(ctx context.Context) error {
	_, err := db.db.ExecContext(ctx, `UPDATE radio_loop_track SET is_active = 0 WHERE is_active = 1`)
	if err != nil {
		return fmt.Errorf("failed to deactivate loop tracks: %w", err)
	}
	return nil
}

func (db *DB) DeactivateLoopTrack(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `UPDATE radio_loop_track SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate loop track: %w", err)
	}
	return nil
}

func (db *DB) ListSoundEffects(ctx context.Context) ([]models.SoundEffect, error) {
	query := `SELECT id, name, audio_url, created_at FROM radio_sound_effects ORDER BY created_at DESC`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sound effects: %w", err)
	}
	defer rows.Close()

	var effects []models.SoundEffect
	for rows.Next() {
		var e models.SoundEffect
		if err := rows.Scan(&e.ID, &e.Name, &e.AudioURL, &e.CreatedAt); err != nil {
			return nil, err
		}
		effects = append(effects, e)
	}
	return effects, rows.Err()
}

func (db *DB) CreateSoundEffect(ctx context.Context, effect *models.SoundEffect) error {
	if effect.CreatedAt.IsZero() {
		effect.CreatedAt = time.Now()
	}

	query := `INSERT INTO radio_sound_effects (id, name, audio_url, created_at) VALUES (?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query, effect.ID, effect.Name, effect.AudioURL, effect.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sound effect: %w", err)
	}
	return nil
}

func (db *DB) DeleteSoundEffect(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `DELETE FROM radio_sound_effects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sound effect: %w", err)
	}
	return nil
}
