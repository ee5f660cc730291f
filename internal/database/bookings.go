package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estudio/internal/models"
)

const bookingColumns = `id, user_id, title, description, start_time, end_time, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Description,
		&b.StartTime,
		&b.EndTime,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM schedule_bookings WHERE id = ?`

	booking, err := scanBooking(db.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	query := `INSERT INTO schedule_bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.Title,
		booking.Description,
		booking.StartTime,
		booking.EndTime,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (db *DB) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	query := `UPDATE schedule_bookings
	          SET title = ?, description = ?, start_time = ?, end_time = ?
	          WHERE id = ?`

	result, err := db.db.ExecContext(ctx, query,
		booking.Title,
		booking.Description,
		booking.StartTime,
		booking.EndTime,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	return nil
}

func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `DELETE FROM schedule_bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// ListBookingsBetween returns every booking (any owner) whose start instant
// falls in [start, end), ordered by start time.
func (db *DB) ListBookingsBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM schedule_bookings
	          WHERE start_time >= ? AND start_time < ?
	          ORDER BY start_time, created_at`

	rows, err := db.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListUserBookings returns the user's upcoming bookings from the given
// instant, oldest first, capped at limit (0 means no cap).
func (db *DB) ListUserBookings(ctx context.Context, userID string, from time.Time, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM schedule_bookings
	          WHERE user_id = ? AND start_time >= ?
	          ORDER BY start_time`
	args := []any{userID, from}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (db *DB) CountBookings(ctx context.Context) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_bookings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
