package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"harmonia/internal/app/albums"
	"harmonia/internal/auth"
	"harmonia/internal/store"
)

// AlbumService exposes album workflows including the like toggle and the
// cache-aside like-count read.
type AlbumService interface {
	Create(ctx context.Context, name string, year int) (string, error)
	List(ctx context.Context) ([]store.Album, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, coverURL string) error
	ToggleLike(ctx context.Context, albumID, userID string) (string, error)
	LikeCount(ctx context.Context, albumID string) (albums.LikeCount, error)
}

// SongService coordinates song-level operations.
type SongService interface {
	Create(ctx context.Context, song store.Song) (string, error)
	Search(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	Get(ctx context.Context, id string) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
	ListByAlbum(ctx context.Context, albumID string) ([]store.SongSummary, error)
}

// PlaylistService coordinates playlist membership and activity workflows.
type PlaylistService interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, userID string) ([]store.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSong(ctx context.Context, playlistID, songID, userID string) error
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	Songs(ctx context.Context, playlistID, userID string) (store.PlaylistWithSongs, error)
	Activities(ctx context.Context, playlistID, userID string) ([]store.PlaylistActivity, error)
}

// CollaborationService grants and revokes playlist collaborator access.
type CollaborationService interface {
	Add(ctx context.Context, playlistID, collaboratorID, ownerID string) (string, error)
	Remove(ctx context.Context, playlistID, collaboratorID, ownerID string) error
}

// UserService coordinates registration and credential workflows.
type UserService interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	VerifyCredential(ctx context.Context, username, password string) (string, error)
	StoreRefreshToken(ctx context.Context, token string) error
	CheckRefreshToken(ctx context.Context, token string) error
	RevokeRefreshToken(ctx context.Context, token string) error
}

// CoverStorage stores uploaded album cover images.
type CoverStorage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	albums         AlbumService
	songs          SongService
	playlists      PlaylistService
	collaborations CollaborationService
	users          UserService
	tokens         *auth.TokenManager
	covers         CoverStorage
}

// New configures a Server over the given services.
func New(
	albums AlbumService,
	songs SongService,
	playlists PlaylistService,
	collaborations CollaborationService,
	users UserService,
	tokens *auth.TokenManager,
	covers CoverStorage,
) *Server {
	return &Server{
		albums:         albums,
		songs:          songs,
		playlists:      playlists,
		collaborations: collaborations,
		users:          users,
		tokens:         tokens,
		covers:         covers,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Albums
	mux.HandleFunc("POST /albums", s.handleCreateAlbum)
	mux.HandleFunc("GET /albums", s.handleListAlbums)
	mux.HandleFunc("GET /albums/{id}", s.handleGetAlbum)
	mux.HandleFunc("PUT /albums/{id}", s.handleUpdateAlbum)
	mux.HandleFunc("DELETE /albums/{id}", s.handleDeleteAlbum)
	mux.HandleFunc("POST /albums/{id}/covers", s.handleUploadAlbumCover)
	mux.HandleFunc("POST /albums/{id}/likes", s.handleToggleAlbumLike)
	mux.HandleFunc("GET /albums/{id}/likes", s.handleAlbumLikeCount)

	// Songs
	mux.HandleFunc("POST /songs", s.handleCreateSong)
	mux.HandleFunc("GET /songs", s.handleSearchSongs)
	mux.HandleFunc("GET /songs/{id}", s.handleGetSong)
	mux.HandleFunc("PUT /songs/{id}", s.handleUpdateSong)
	mux.HandleFunc("DELETE /songs/{id}", s.handleDeleteSong)

	// Playlists
	mux.HandleFunc("POST /playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("GET /playlists/{id}/songs", s.handleGetPlaylistSongs)
	mux.HandleFunc("DELETE /playlists/{id}/songs", s.handleRemovePlaylistSong)
	mux.HandleFunc("GET /playlists/{id}/activities", s.handlePlaylistActivities)

	// Collaborations
	mux.HandleFunc("POST /collaborations", s.handleAddCollaboration)
	mux.HandleFunc("DELETE /collaborations", s.handleRemoveCollaboration)

	// Accounts
	mux.HandleFunc("POST /users", s.handleRegisterUser)
	mux.HandleFunc("POST /authentications", s.handleLogin)
	mux.HandleFunc("PUT /authentications", s.handleRefreshToken)
	mux.HandleFunc("DELETE /authentications", s.handleLogout)

	return RequestLogging(Recovery(mux))
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: "success", Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: "fail", Message: message})
}

// writeServiceError maps the store's error kinds onto HTTP statuses.
// Anything unrecognized is an internal failure and stays opaque.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrAlbumNotFound),
		errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrPlaylistNotFound),
		errors.Is(err, store.ErrPlaylistSongNotFound),
		errors.Is(err, store.ErrCollaborationNotFound),
		errors.Is(err, store.ErrUserNotFound):
		writeFail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrForbidden):
		writeFail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrLikeConflict),
		errors.Is(err, store.ErrDuplicatePlaylistSong),
		errors.Is(err, store.ErrDuplicateCollaboration),
		errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrRefreshTokenNotFound):
		writeFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeFail(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, envelope{
			Status:  "error",
			Message: "internal server error",
		})
	}
}

// authUserID resolves the bearer token to a user id.
func (s *Server) authUserID(r *http.Request) (string, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return s.tokens.ParseAccessToken(token)
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
