package database

import (
	"context"
	"fmt"
	"time"

	"estudio/internal/models"
)

const artistColumns = `id, name, genre, bio, image_url, instagram_url, spotify_url, is_active, featured, created_at`

func scanArtist(row interface{ Scan(...any) error }) (*models.Artist, error) {
	var a models.Artist
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Genre,
		&a.Bio,
		&a.ImageURL,
		&a.InstagramURL,
		&a.SpotifyURL,
		&a.IsActive,
		&a.Featured,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists ORDER BY name`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, *artist)
	}
	return artists, rows.Err()
}

func (db *DB) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if artist.CreatedAt.IsZero() {
		artist.CreatedAt = time.Now()
	}

	query := `INSERT INTO artists (` + artistColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		artist.ID,
		artist.Name,
		artist.Genre,
		artist.Bio,
		artist.ImageURL,
		artist.InstagramURL,
		artist.SpotifyURL,
		artist.IsActive,
		artist.Featured,
		artist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (db *DB) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	query := `UPDATE artists SET name = ?, genre = ?, bio = ?, image_url = ?,
	          instagram_url = ?, spotify_url = ?, is_active = ?, featured = ?
	          WHERE id = ?`
	_, err := db.db.ExecContext(ctx, query,
		artist.Name,
		artist.Genre,
		artist.Bio,
		artist.ImageURL,
		artist.InstagramURL,
		artist.SpotifyURL,
		artist.IsActive,
		artist.Featured,
		artist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	return nil
}

func (db *DB) DeleteArtist(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}

func (db *DB) CountArtists(ctx context.Context) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}
	return count, nil
}

const productionColumns = `id, title, artist_name, status, genre, notes, created_at, updated_at`

func scanProduction(row interface{ Scan(...any) error }) (*models.Production, error) {
	var p models.Production
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.ArtistName,
		&p.Status,
		&p.Genre,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) listProductionsQuery(ctx context.Context, query string, args ...any) ([]models.Production, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}
	defer rows.Close()

	var productions []models.Production
	for rows.Next() {
		production, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production: %w", err)
		}
		productions = append(productions, *production)
	}
	return productions, rows.Err()
}

func (db *DB) ListProductions(ctx context.Context) ([]models.Production, error) {
	return db.listProductionsQuery(ctx,
		`SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC`)
}

func (db *DB) ListRecentProductions(ctx context.Context, limit int) ([]models.Production, error) {
	return db.listProductionsQuery(ctx,
		`SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC LIMIT ?`, limit)
}

func (db *DB) CreateProduction(ctx context.Context, production *models.Production) error {
	now := time.Now()
	if production.CreatedAt.IsZero() {
		production.CreatedAt = now
	}
	if production.UpdatedAt.IsZero() {
		production.UpdatedAt = now
	}

	query := `INSERT INTO productions (` + productionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		production.ID,
		production.Title,
		production.ArtistName,
		production.Status,
		production.Genre,
		production.Notes,
		production.CreatedAt,
		production.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create production: %w", err)
	}
	return nil
}

func (db *DB) UpdateProduction(ctx context.Context, production *models.Production) error {
	production.UpdatedAt = time.Now()

	query := `UPDATE productions SET title = ?, artist_name = ?, status = ?,
	          genre = ?, notes = ?, updated_at = ? WHERE id = ?`
	_, err := db.db.ExecContext(ctx, query,
		production.Title,
		production.ArtistName,
		production.Status,
		production.Genre,
		production.Notes,
		production.UpdatedAt,
		production.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update production: %w", err)
	}
	return nil
}

func (db *DB) DeleteProduction(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `DELETE FROM productions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete production: %w", err)
	}
	return nil
}

func (db *DB) CountProductions(ctx context.Context) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM productions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count productions: %w", err)
	}
	return count, nil
}

func (db *DB) CountProductionsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM productions WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count productions by status: %w", err)
	}
	return count, nil
}

const highlightColumns = `id, title, subtitle, image_url, link_url, position, is_active`

func scanHighlight(row interface{ Scan(...any) error }) (*models.Highlight, error) {
	var h models.Highlight
	err := row.Scan(
		&h.ID,
		&h.Title,
		&h.Subtitle,
		&h.ImageURL,
		&h.LinkURL,
		&h.Position,
		&h.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (db *DB) ListHighlights(ctx context.Context) ([]models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM carousel_highlights ORDER BY position`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	defer rows.Close()

	var highlights []models.Highlight
	for rows.Next() {
		highlight, err := scanHighlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		highlights = append(highlights, *highlight)
	}
	return highlights, rows.Err()
}

func (db *DB) CreateHighlight(ctx context.Context, highlight *models.Highlight) error {
	query := `INSERT INTO carousel_highlights (` + highlightColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		highlight.ID,
		highlight.Title,
		highlight.Subtitle,
		highlight.ImageURL,
		highlight.LinkURL,
		highlight.Position,
		highlight.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create highlight: %w", err)
	}
	return nil
}

func (db *DB) UpdateHighlight(ctx context.Context, highlight *models.Highlight) error {
	query := `UPDATE carousel_highlights SET title = ?, subtitle = ?, image_url = ?,
	          link_url = ?, position = ?, is_active = ? WHERE id = ?`
	_, err := db.db.ExecContext(ctx, query,
		highlight.Title,
		highlight.Subtitle,
		highlight.ImageURL,
		highlight.LinkURL,
		highlight.Position,
		highlight.IsActive,
		highlight.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update highlight: %w", err)
	}
	return nil
}

func (db *DB) DeleteHighlight(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `DELETE FROM carousel_highlights WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete highlight: %w", err)
	}
	return nil
}

func (db *DB) MaxHighlightPosition(ctx context.Context) (int, error) {
	var max int
	err := db.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM carousel_highlights`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max highlight position: %w", err)
	}
	return max, nil
}
