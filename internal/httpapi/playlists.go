package httpapi

import (
	"encoding/json"
	"net/http"

	"harmonia/internal/store"
)

type playlistRequest struct {
	Name string `json:"name"`
}

type playlistSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.playlists.Create(r.Context(), req.Name, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "playlist added", map[string]string{"playlistId": id})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	playlists, err := s.playlists.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"playlists": playlists})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "playlist deleted", nil)
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.SongID == "" {
		writeFail(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.playlists.AddSong(r.Context(), r.PathValue("id"), req.SongID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "song added to playlist", nil)
}

func (s *Server) handleGetPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	playlist, err := s.playlists.Songs(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"playlist": playlist})
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.SongID == "" {
		writeFail(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), r.PathValue("id"), req.SongID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "song removed from playlist", nil)
}

func (s *Server) handlePlaylistActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	playlistID := r.PathValue("id")
	activities, err := s.playlists.Activities(r.Context(), playlistID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if activities == nil {
		activities = []store.PlaylistActivity{}
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{
		"playlistId": playlistID,
		"activities": activities,
	})
}
