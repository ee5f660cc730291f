package service

import (
	"context"
	"strings"

	"estudio/internal/domain"
	"estudio/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CatalogService struct {
	catalog  domain.CatalogRepository
	bookings domain.BookingRepository
	logger   *zerolog.Logger
}

func NewCatalogService(catalog domain.CatalogRepository, bookings domain.BookingRepository, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		bookings: bookings,
		logger:   logger,
	}
}

func (s *CatalogService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	return s.catalog.ListArtists(ctx)
}

// ActiveArtists is the public showcase view.
func (s *CatalogService) ActiveArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := s.catalog.ListArtists(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Artist, 0, len(artists))
	for _, a := range artists {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *CatalogService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if strings.TrimSpace(artist.Name) == "" {
		return ErrNameRequired
	}
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	return s.catalog.CreateArtist(ctx, artist)
}

func (s *CatalogService) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	return s.catalog.UpdateArtist(ctx, artist)
}

func (s *CatalogService) DeleteArtist(ctx context.Context, id string) error {
	return s.catalog.DeleteArtist(ctx, id)
}

func (s *CatalogService) ListProductions(ctx context.Context) ([]models.Production, error) {
	return s.catalog.ListProductions(ctx)
}

func (s *CatalogService) CreateProduction(ctx context.Context, production *models.Production) error {
	if strings.TrimSpace(production.Title) == "" {
		return ErrNameRequired
	}
	if production.ID == "" {
		production.ID = uuid.NewString()
	}
	if production.Status == "" {
		production.Status = models.ProductionPending
	}
	return s.catalog.CreateProduction(ctx, production)
}

func (s *CatalogService) UpdateProduction(ctx context.Context, production *models.Production) error {
	return s.catalog.UpdateProduction(ctx, production)
}

func (s *CatalogService) DeleteProduction(ctx context.Context, id string) error {
	return s.catalog.DeleteProduction(ctx, id)
}

func (s *CatalogService) ListHighlights(ctx context.Context) ([]models.Highlight, error) {
	return s.catalog.ListHighlights(ctx)
}

// ActiveHighlights is the public hero-carousel view, already ordered by
// position.
func (s *CatalogService) ActiveHighlights(ctx context.Context) ([]models.Highlight, error) {
	highlights, err := s.catalog.ListHighlights(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Highlight, 0, len(highlights))
	for _, h := range highlights {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active, nil
}

// CreateHighlight appends the new slide to the end of the carousel.
func (s *CatalogService) CreateHighlight(ctx context.Context, highlight *models.Highlight) error {
	if strings.TrimSpace(highlight.Title) == "" {
		return ErrNameRequired
	}
	if highlight.ID == "" {
		highlight.ID = uuid.NewString()
	}

	maxPos, err := s.catalog.MaxHighlightPosition(ctx)
	if err != nil {
		return err
	}
	highlight.Position = maxPos + 1

	return s.catalog.CreateHighlight(ctx, highlight)
}

func (s *CatalogService) UpdateHighlight(ctx context.Context, highlight *models.Highlight) error {
	return s.catalog.UpdateHighlight(ctx, highlight)
}

func (s *CatalogService) DeleteHighlight(ctx context.Context, id string) error {
	return s.catalog.DeleteHighlight(ctx, id)
}

// DashboardStats aggregates the admin landing-page counters.
func (s *CatalogService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	artists, err := s.catalog.CountArtists(ctx)
	if err != nil {
		return nil, err
	}
	productions, err := s.catalog.CountProductions(ctx)
	if err != nil {
		return nil, err
	}
	activeProductions, err := s.catalog.CountProductionsByStatus(ctx, models.ProductionInProgress)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountBookings(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.catalog.ListRecentProductions(ctx, models.DefaultRecentProductions)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Artists:           artists,
		Productions:       productions,
		ActiveProductions: activeProductions,
		Bookings:          bookings,
		RecentProductions: recent,
	}, nil
}
