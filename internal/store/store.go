package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrAlbumNotFound signals the referenced album does not exist.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrSongNotFound signals the referenced song does not exist.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound signals the referenced playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrPlaylistSongNotFound signals the song is not part of the playlist.
	ErrPlaylistSongNotFound = errors.New("song not found in playlist")
	// ErrCollaborationNotFound signals no collaboration exists for the pair.
	ErrCollaborationNotFound = errors.New("collaboration not found")
	// ErrUserNotFound signals the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden indicates the caller does not own (or may not access) the resource.
	ErrForbidden = errors.New("resource access forbidden")
	// ErrUserExists signals the username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRefreshTokenNotFound indicates the refresh token is unknown.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrLikeConflict indicates a like toggle lost a race and changed no rows.
	ErrLikeConflict = errors.New("album like state conflict")
	// ErrDuplicatePlaylistSong indicates the song is already in the playlist.
	ErrDuplicatePlaylistSong = errors.New("song already in playlist")
	// ErrDuplicateCollaboration indicates the user already collaborates on the playlist.
	ErrDuplicateCollaboration = errors.New("collaboration already exists")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// newID builds a prefixed identifier such as "album-9f0c...".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
