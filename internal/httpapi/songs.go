package httpapi

import (
	"encoding/json"
	"net/http"

	"harmonia/internal/store"
)

type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (r songRequest) validate() string {
	switch {
	case r.Title == "":
		return "title is required"
	case r.Year <= 0:
		return "year must be a positive number"
	case r.Performer == "":
		return "performer is required"
	case r.Genre == "":
		return "genre is required"
	}
	return ""
}

func (r songRequest) song() store.Song {
	return store.Song{
		Title:     r.Title,
		Year:      r.Year,
		Performer: r.Performer,
		Genre:     r.Genre,
		Duration:  r.Duration,
		AlbumID:   r.AlbumID,
	}
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	id, err := s.songs.Create(r.Context(), req.song())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "song added", map[string]string{"songId": id})
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	songs, err := s.songs.Search(r.Context(), query.Get("title"), query.Get("performer"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"songs": songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"song": song})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.songs.Update(r.Context(), r.PathValue("id"), req.song()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "song updated", nil)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "song deleted", nil)
}
