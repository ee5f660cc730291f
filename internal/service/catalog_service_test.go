package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estudio/internal/models"
)

func newCatalogService(catalog *mockCatalog, bookings *mockBookings) *CatalogService {
	logger := zerolog.Nop()
	return NewCatalogService(catalog, bookings, &logger)
}

func TestCreateArtist_AssignsID(t *testing.T) {
	catalog := new(mockCatalog)
	svc := newCatalogService(catalog, new(mockBookings))

	catalog.On("CreateArtist", mock.Anything, mock.MatchedBy(func(a *models.Artist) bool {
		return a.ID != "" && a.Name == "Marina"
	})).Return(nil)

	err := svc.CreateArtist(context.Background(), &models.Artist{Name: "Marina", IsActive: true})
	require.NoError(t, err)
	catalog.AssertExpectations(t)
}

func TestCreateArtist_NameRequired(t *testing.T) {
	svc := newCatalogService(new(mockCatalog), new(mockBookings))

	err := svc.CreateArtist(context.Background(), &models.Artist{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestActiveArtists_FiltersInactive(t *testing.T) {
	catalog := new(mockCatalog)
	svc := newCatalogService(catalog, new(mockBookings))

	catalog.On("ListArtists", mock.Anything).Return([]models.Artist{
		{ID: "a", Name: "Active", IsActive: true},
		{ID: "b", Name: "Retired", IsActive: false},
	}, nil)

	artists, err := svc.ActiveArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Active", artists[0].Name)
}

func TestCreateProduction_DefaultsStatus(t *testing.T) {
	catalog := new(mockCatalog)
	svc := newCatalogService(catalog, new(mockBookings))

	catalog.On("CreateProduction", mock.Anything, mock.MatchedBy(func(p *models.Production) bool {
		return p.Status == models.ProductionPending && p.ID != ""
	})).Return(nil)

	err := svc.CreateProduction(context.Background(), &models.Production{Title: "EP"})
	require.NoError(t, err)
	catalog.AssertExpectations(t)
}

func TestCreateHighlight_AppendsAtEnd(t *testing.T) {
	catalog := new(mockCatalog)
	svc := newCatalogService(catalog, new(mockBookings))

	catalog.On("MaxHighlightPosition", mock.Anything).Return(4, nil)
	catalog.On("CreateHighlight", mock.Anything, mock.MatchedBy(func(h *models.Highlight) bool {
		return h.Position == 5
	})).Return(nil)

	highlight := &models.Highlight{Title: "Open day", IsActive: true}
	require.NoError(t, svc.CreateHighlight(context.Background(), highlight))
	assert.Equal(t, 5, highlight.Position)
}

func TestActiveHighlights(t *testing.T) {
	catalog := new(mockCatalog)
	svc := newCatalogService(catalog, new(mockBookings))

	catalog.On("ListHighlights", mock.Anything).Return([]models.Highlight{
		{ID: "1", Title: "First", Position: 1, IsActive: true},
		{ID: "2", Title: "Hidden", Position: 2, IsActive: false},
		{ID: "3", Title: "Third", Position: 3, IsActive: true},
	}, nil)

	highlights, err := svc.ActiveHighlights(context.Background())
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, "First", highlights[0].Title)
	assert.Equal(t, "Third", highlights[1].Title)
}

func TestDashboardStats(t *testing.T) {
	catalog := new(mockCatalog)
	bookings := new(mockBookings)
	svc := newCatalogService(catalog, bookings)

	catalog.On("CountArtists", mock.Anything).Return(8, nil)
	catalog.On("CountProductions", mock.Anything).Return(12, nil)
	catalog.On("CountProductionsByStatus", mock.Anything, models.ProductionInProgress).Return(3, nil)
	bookings.On("CountBookings", mock.Anything).Return(42, nil)
	catalog.On("ListRecentProductions", mock.Anything, models.DefaultRecentProductions).Return([]models.Production{
		{ID: "p1", Title: "Latest"},
	}, nil)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Artists)
	assert.Equal(t, 12, stats.Productions)
	assert.Equal(t, 3, stats.ActiveProductions)
	assert.Equal(t, 42, stats.Bookings)
	require.Len(t, stats.RecentProductions, 1)
	assert.Equal(t, "Latest", stats.RecentProductions[0].Title)
}
