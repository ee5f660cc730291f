package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudio/internal/models"
)

func TestArtists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	artist := &models.Artist{
		ID:       uuid.NewString(),
		Name:     "Marina",
		Genre:    "indie",
		IsActive: true,
	}
	require.NoError(t, db.CreateArtist(ctx, artist))
	require.NoError(t, db.CreateArtist(ctx, &models.Artist{ID: uuid.NewString(), Name: "Bloco Zul", IsActive: true}))

	artists, err := db.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Bloco Zul", artists[0].Name)

	artist.Featured = true
	artist.SpotifyURL = "https://open.spotify.com/artist/x"
	require.NoError(t, db.UpdateArtist(ctx, artist))

	artists, err = db.ListArtists(ctx)
	require.NoError(t, err)
	for _, a := range artists {
		if a.ID == artist.ID {
			assert.True(t, a.Featured)
			assert.Equal(t, "https://open.spotify.com/artist/x", a.SpotifyURL)
		}
	}

	count, err := db.CountArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, db.DeleteArtist(ctx, artist.ID))
	count, err = db.CountArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProductions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i, title := range []string{"EP one", "Single two", "Album three"} {
		p := &models.Production{
			ID:         uuid.NewString(),
			Title:      title,
			ArtistName: "Marina",
			Status:     models.ProductionPending,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.CreateProduction(ctx, p))
	}

	productions, err := db.ListProductions(ctx)
	require.NoError(t, err)
	require.Len(t, productions, 3)
	assert.Equal(t, "Album three", productions[0].Title)

	recent, err := db.ListRecentProductions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Album three", recent[0].Title)
	assert.Equal(t, "Single two", recent[1].Title)

	target := productions[0]
	target.Status = models.ProductionInProgress
	require.NoError(t, db.UpdateProduction(ctx, &target))

	inProgress, err := db.CountProductionsByStatus(ctx, models.ProductionInProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, inProgress)

	total, err := db.CountProductions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	require.NoError(t, db.DeleteProduction(ctx, target.ID))
	total, err = db.CountProductions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestHighlights(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	maxPos, err := db.MaxHighlightPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxPos)

	first := &models.Highlight{ID: uuid.NewString(), Title: "New room", Position: 1, IsActive: true}
	second := &models.Highlight{ID: uuid.NewString(), Title: "Open day", Position: 2, IsActive: true}
	require.NoError(t, db.CreateHighlight(ctx, first))
	require.NoError(t, db.CreateHighlight(ctx, second))

	maxPos, err = db.MaxHighlightPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, maxPos)

	highlights, err := db.ListHighlights(ctx)
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, "New room", highlights[0].Title)

	second.IsActive = false
	require.NoError(t, db.UpdateHighlight(ctx, second))

	highlights, err = db.ListHighlights(ctx)
	require.NoError(t, err)
	assert.False(t, highlights[1].IsActive)

	require.NoError(t, db.DeleteHighlight(ctx, first.ID))
	highlights, err = db.ListHighlights(ctx)
	require.NoError(t, err)
	assert.Len(t, highlights, 1)
}
