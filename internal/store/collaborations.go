package store

import (
	"context"
	"fmt"
)

// AddCollaboration grants a user access to a playlist's membership
// operations. Owner verification happens at the service layer.
func (s *Store) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	id := newID("collab")

	var got string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`, id, playlistID, userID).Scan(&got)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateCollaboration
		}
		if isForeignKeyViolation(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("insert collaboration: %w", err)
	}
	return got, nil
}

// DeleteCollaboration revokes a user's access to a playlist.
func (s *Store) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}
