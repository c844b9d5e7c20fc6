package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Album is a catalog album row.
type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	CoverURL  *string   `json:"coverUrl"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CreateAlbum inserts a new album and returns its generated id.
func (s *Store) CreateAlbum(ctx context.Context, name string, year int) (string, error) {
	id := newID("album")
	now := time.Now().UTC()

	var got string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (id, name, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`, id, name, year, now).Scan(&got)
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	return got, nil
}

// ListAlbums returns every album in the catalog.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, year
		FROM albums
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var album Album
		if err := rows.Scan(&album.ID, &album.Name, &album.Year); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// GetAlbum returns a single album by id.
func (s *Store) GetAlbum(ctx context.Context, id string) (Album, error) {
	var album Album
	var cover sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, year, cover_url
		FROM albums
		WHERE id = $1`, id).Scan(&album.ID, &album.Name, &album.Year, &cover)
	if errors.Is(err, sql.ErrNoRows) {
		return Album{}, ErrAlbumNotFound
	}
	if err != nil {
		return Album{}, fmt.Errorf("get album: %w", err)
	}
	if cover.Valid {
		album.CoverURL = &cover.String
	}
	return album, nil
}

// UpdateAlbum replaces an album's name and year.
func (s *Store) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $1, year = $2, updated_at = $3
		WHERE id = $4`, name, year, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album. Dependent likes are removed by the
// database cascade.
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// SetAlbumCover records the public URL of an uploaded cover image.
func (s *Store) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET cover_url = $1, updated_at = $2
		WHERE id = $3`, coverURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set album cover: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// AlbumExists reports ErrAlbumNotFound when no album carries the id.
func (s *Store) AlbumExists(ctx context.Context, id string) error {
	var got string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM albums WHERE id = $1`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlbumNotFound
	}
	if err != nil {
		return fmt.Errorf("check album: %w", err)
	}
	return nil
}
