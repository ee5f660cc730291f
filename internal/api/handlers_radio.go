package api

import (
	"net/http"

	"estudio/internal/models"
)

func (s *Server) handleRadioStartLive(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		HostName string `json:"host_name"`
		Title    string `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.radio.StartLive(r.Context(), body.HostName, body.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleRadioSetTrack(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		TrackURL  string `json:"track_url"`
		TrackName string `json:"track_name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.radio.SetCurrentTrack(r.Context(), body.TrackURL, body.TrackName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleRadioStopLive(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.radio.StopLive(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "off-air"})
}

func (s *Server) handleRadioSetLoop(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		Title    string `json:"title"`
		AudioURL string `json:"audio_url"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	track, err := s.radio.SetLoopTrack(r.Context(), body.Title, body.AudioURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, track)
}

func (s *Server) handleRadioRemoveLoop(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.radio.RemoveLoopTrack(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleRadioListEffects(w http.ResponseWriter, r *http.Request, _ Identity) {
	effects, err := s.radio.ListSoundEffects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if effects == nil {
		effects = []models.SoundEffect{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"effects": effects})
}

func (s *Server) handleRadioCreateEffect(w http.ResponseWriter, r *http.Request, _ Identity) {
	var body struct {
		Name     string `json:"name"`
		AudioURL string `json:"audio_url"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	effect, err := s.radio.CreateSoundEffect(r.Context(), body.Name, body.AudioURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, effect)
}

func (s *Server) handleRadioDeleteEffect(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.radio.DeleteSoundEffect(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
