package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estudio/internal/models"
)

const messageColumns = `id, sender_id, recipient_id, subject, content, is_admin_message, is_read, created_at`

func scanMessage(row interface{ Scan(...any) error }) (*models.Message, error) {
	var m models.Message
	var recipient sql.NullString
	err := row.Scan(
		&m.ID,
		&m.SenderID,
		&recipient,
		&m.Subject,
		&m.Content,
		&m.IsAdminMessage,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.RecipientID = recipient.String
	return &m, nil
}

func (db *DB) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = ?`

	message, err := scanMessage(db.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return message, nil
}

// ListMessagesForUser returns messages the user sent or received, newest
// first.
func (db *DB) ListMessagesForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
	          WHERE sender_id = ? OR recipient_id = ?
	          ORDER BY created_at DESC`
	args := []any{userID, userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *message)
	}
	return messages, rows.Err()
}

func (db *DB) CreateMessage(ctx context.Context, message *models.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	var recipient any
	if message.RecipientID != "" {
		recipient = message.RecipientID
	}

	query := `INSERT INTO messages (` + messageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		message.ID,
		message.SenderID,
		recipient,
		message.Subject,
		message.Content,
		message.IsAdminMessage,
		message.IsRead,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (db *DB) MarkMessageRead(ctx context.Context, id string) error {
	_, err := db.db.ExecContext(ctx, `UPDATE messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (db *DB) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
