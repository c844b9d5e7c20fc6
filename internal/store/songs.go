package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Song is a catalog song row. Duration and AlbumID are optional; AlbumID
// is a weak reference, a song outlives the album it points at.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Performer string    `json:"performer"`
	Genre     string    `json:"genre"`
	Duration  *int      `json:"duration"`
	AlbumID   *string   `json:"albumId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// SongSummary is the short projection used in listings and playlists.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// CreateSong inserts a new song and returns its generated id.
func (s *Store) CreateSong(ctx context.Context, song Song) (string, error) {
	id := newID("song")
	now := time.Now().UTC()

	var got string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration, album_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`,
		id, song.Title, song.Year, song.Performer, song.Genre,
		nullableInt(song.Duration), nullableString(song.AlbumID), now).Scan(&got)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", ErrAlbumNotFound
		}
		return "", fmt.Errorf("insert song: %w", err)
	}
	return got, nil
}

// SearchSongs returns songs whose title and performer both match the
// given fragments, case-insensitively. Empty fragments match everything.
func (s *Store) SearchSongs(ctx context.Context, title, performer string) ([]SongSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE title ILIKE $1 AND performer ILIKE $2
		ORDER BY created_at ASC, id ASC`, "%"+title+"%", "%"+performer+"%")
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()
	return scanSongSummaries(rows)
}

// GetSong returns a single song by id.
func (s *Store) GetSong(ctx context.Context, id string) (Song, error) {
	var song Song
	var duration sql.NullInt32
	var albumID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, performer, genre, duration, album_id
		FROM songs
		WHERE id = $1`, id).Scan(&song.ID, &song.Title, &song.Year,
		&song.Performer, &song.Genre, &duration, &albumID)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("get song: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int32)
		song.Duration = &d
	}
	if albumID.Valid {
		song.AlbumID = &albumID.String
	}
	return song, nil
}

// UpdateSong replaces every mutable attribute of a song.
func (s *Store) UpdateSong(ctx context.Context, id string, song Song) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = $1, year = $2, performer = $3, genre = $4, duration = $5, album_id = $6, updated_at = $7
		WHERE id = $8`,
		song.Title, song.Year, song.Performer, song.Genre,
		nullableInt(song.Duration), nullableString(song.AlbumID), time.Now().UTC(), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// ListSongsByAlbum returns the songs referencing an album.
func (s *Store) ListSongsByAlbum(ctx context.Context, albumID string) ([]SongSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY created_at ASC, id ASC`, albumID)
	if err != nil {
		return nil, fmt.Errorf("list album songs: %w", err)
	}
	defer rows.Close()
	return scanSongSummaries(rows)
}

func scanSongSummaries(rows *sql.Rows) ([]SongSummary, error) {
	songs := make([]SongSummary, 0)
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
