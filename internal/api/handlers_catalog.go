package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"estudio/internal/models"

	"github.com/google/uuid"
)

// maxUploadBytes caps media uploads at 25 MB.
const maxUploadBytes = 25 << 20

func (s *Server) handleAdminListArtists(w http.ResponseWriter, r *http.Request, _ Identity) {
	artists, err := s.catalog.ListArtists(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

func (s *Server) handleAdminCreateArtist(w http.ResponseWriter, r *http.Request, _ Identity) {
	var artist models.Artist
	if err := decodeJSON(r, &artist); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.catalog.CreateArtist(r.Context(), &artist); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

func (s *Server) handleAdminUpdateArtist(w http.ResponseWriter, r *http.Request, _ Identity) {
	var artist models.Artist
	if err := decodeJSON(r, &artist); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	artist.ID = r.PathValue("id")
	if err := s.catalog.UpdateArtist(r.Context(), &artist); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleAdminDeleteArtist(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.catalog.DeleteArtist(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminListProductions(w http.ResponseWriter, r *http.Request, _ Identity) {
	productions, err := s.catalog.ListProductions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"productions": productions})
}

func (s *Server) handleAdminCreateProduction(w http.ResponseWriter, r *http.Request, _ Identity) {
	var production models.Production
	if err := decodeJSON(r, &production); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.catalog.CreateProduction(r.Context(), &production); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, production)
}

func (s *Server) handleAdminUpdateProduction(w http.ResponseWriter, r *http.Request, _ Identity) {
	var production models.Production
	if err := decodeJSON(r, &production); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	production.ID = r.PathValue("id")
	if err := s.catalog.UpdateProduction(r.Context(), &production); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, production)
}

func (s *Server) handleAdminDeleteProduction(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.catalog.DeleteProduction(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminListHighlights(w http.ResponseWriter, r *http.Request, _ Identity) {
	highlights, err := s.catalog.ListHighlights(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"highlights": highlights})
}

func (s *Server) handleAdminCreateHighlight(w http.ResponseWriter, r *http.Request, _ Identity) {
	var highlight models.Highlight
	if err := decodeJSON(r, &highlight); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.catalog.CreateHighlight(r.Context(), &highlight); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highlight)
}

func (s *Server) handleAdminUpdateHighlight(w http.ResponseWriter, r *http.Request, _ Identity) {
	var highlight models.Highlight
	if err := decodeJSON(r, &highlight); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	highlight.ID = r.PathValue("id")
	if err := s.catalog.UpdateHighlight(r.Context(), &highlight); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, highlight)
}

func (s *Server) handleAdminDeleteHighlight(w http.ResponseWriter, r *http.Request, _ Identity) {
	if err := s.catalog.DeleteHighlight(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleUpload stores a multipart file under the media root. The form field
// is "file"; an optional "folder" field groups uploads.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, _ Identity) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}
	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(header.Filename))

	url, err := s.storage.Upload(r.Context(), objectPath, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to store upload")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url, "path": objectPath})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, _ Identity) {
	stats, err := s.catalog.DashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleExportSchedule builds the workbook for the week containing the
// requested date (today when absent) and streams it back.
func (s *Server) handleExportSchedule(w http.ResponseWriter, r *http.Request, _ Identity) {
	day, ok := parseDateParam(r, "week")
	if !ok {
		day = time.Now()
	}

	weekday := (int(day.Weekday()) + 6) % 7
	weekStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		AddDate(0, 0, -weekday)

	filePath, err := s.exporter.Export(r.Context(), weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build schedule export")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(filePath)))
	http.ServeFile(w, r, filePath)
}
