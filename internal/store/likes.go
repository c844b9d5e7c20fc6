package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ToggleAlbumLike flips the like state for (albumID, userID) and reports
// whether the album ended up liked. The unique index on the pair
// serializes concurrent toggles: the losing writer sees ErrLikeConflict.
func (s *Store) ToggleAlbumLike(ctx context.Context, albumID, userID string) (bool, error) {
	if err := s.AlbumExists(ctx, albumID); err != nil {
		return false, err
	}

	var existing string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM user_album_likes
		WHERE album_id = $1 AND user_id = $2`, albumID, userID).Scan(&existing)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		id := newID("like")
		var got string
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO user_album_likes (id, user_id, album_id)
			VALUES ($1, $2, $3)
			RETURNING id`, id, userID, albumID).Scan(&got)
		if err != nil {
			if isUniqueViolation(err) {
				return false, ErrLikeConflict
			}
			return false, fmt.Errorf("insert like: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("lookup like: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_album_likes
		WHERE album_id = $1 AND user_id = $2`, albumID, userID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, ErrLikeConflict
	}
	return false, nil
}

// CountAlbumLikes recomputes the authoritative like count for an album.
func (s *Store) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	if err := s.AlbumExists(ctx, albumID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM user_album_likes
		WHERE album_id = $1`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
