package models

import "time"

type LiveSession struct {
	ID               string    `json:"id"`
	HostName         string    `json:"host_name,omitempty"`
	Title            string    `json:"title,omitempty"`
	IsLive           bool      `json:"is_live"`
	CurrentTrackURL  string    `json:"current_track_url,omitempty"`
	CurrentTrackName string    `json:"current_track_name,omitempty"`
	StartedAt        time.Time `json:"started_at,omitempty"`
}

type LoopTrack struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AudioURL  string    `json:"audio_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SoundEffect struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AudioURL  string    `json:"audio_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NowPlaying is the reconciled radio state: a live session wins over the
// loop track, the loop track plays on repeat when nobody is live.
type NowPlaying struct {
	Live      bool   `json:"live"`
	Title     string `json:"title,omitempty"`
	HostName  string `json:"host_name,omitempty"`
	TrackURL  string `json:"track_url,omitempty"`
	TrackName string `json:"track_name,omitempty"`
	Loop      bool   `json:"loop"`
}
