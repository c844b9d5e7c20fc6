package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"harmonia/internal/store"
)

// maxCoverBytes bounds cover uploads at 512 KB, matching the API contract.
const maxCoverBytes = 512_000

type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// albumDetail is the single-album response: the album row plus the songs
// referencing it, composed from two service calls.
type albumDetail struct {
	store.Album
	Songs []store.SongSummary `json:"songs"`
}

func (r albumRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.Year <= 0 {
		return "year must be a positive number"
	}
	return ""
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	id, err := s.albums.Create(r.Context(), req.Name, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "album added", map[string]string{"albumId": id})
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.albums.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if albums == nil {
		albums = []store.Album{}
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"albums": albums})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	album, err := s.albums.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	songs, err := s.songs.ListByAlbum(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{
		"album": albumDetail{Album: album, Songs: songs},
	})
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.albums.Update(r.Context(), r.PathValue("id"), req.Name, req.Year); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "album updated", nil)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.albums.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "album deleted", nil)
}

func (s *Server) handleUploadAlbumCover(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.albums.Get(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes)
	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		writeFail(w, http.StatusRequestEntityTooLarge, "cover exceeds the 512KB limit")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isImageContentType(contentType) {
		writeFail(w, http.StatusBadRequest, "cover must be an image")
		return
	}

	name := fmt.Sprintf("%s%s", id, filepath.Ext(header.Filename))
	url, err := s.covers.Put(r.Context(), name, file, header.Size, contentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.albums.SetCover(r.Context(), id, url); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "cover uploaded", nil)
}

func (s *Server) handleToggleAlbumLike(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message, err := s.albums.ToggleLike(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, message, nil)
}

func (s *Server) handleAlbumLikeCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.albums.LikeCount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Observability only: tells the caller whether the value was cached.
	w.Header().Set("X-Data-Source", count.Source)
	writeSuccess(w, http.StatusOK, "", map[string]int{"likes": count.Likes})
}

func isImageContentType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/avif", "image/apng":
		return true
	}
	return false
}
