package models

import "time"

type Artist struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Genre        string    `json:"genre,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	InstagramURL string    `json:"instagram_url,omitempty"`
	SpotifyURL   string    `json:"spotify_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
}

type Production struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ArtistName string    `json:"artist_name,omitempty"`
	Status     string    `json:"status"` // pending, in_progress, completed
	Genre      string    `json:"genre,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Highlight struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	LinkURL  string `json:"link_url,omitempty"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	Artists           int          `json:"artists"`
	Productions       int          `json:"productions"`
	ActiveProductions int          `json:"active_productions"`
	Bookings          int          `json:"bookings"`
	RecentProductions []Production `json:"recent_productions"`
}
