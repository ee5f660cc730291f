package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudio/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestBooking(userID string, start time.Time, hours int) *models.Booking {
	return &models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "Session",
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
	}
}

func TestNewDB_CreatesFileAndSchema(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "nested", "studio.db")

	logger := zerolog.Nop()
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	assert.NoError(t, db.PingContext(context.Background()))

	// Schema must be queryable right after open.
	_, err = db.ListBookingsBetween(context.Background(), time.Now(), time.Now().Add(time.Hour))
	assert.NoError(t, err)
}
