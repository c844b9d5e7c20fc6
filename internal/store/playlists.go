package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Playlist is the listing projection: id, name and the owner's username.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistWithSongs embeds the membership list for the detail endpoint.
type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

// PlaylistActivity is one entry of the append-only membership log.
type PlaylistActivity struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

// CreatePlaylist inserts a playlist owned by the given user.
func (s *Store) CreatePlaylist(ctx context.Context, name, owner string) (string, error) {
	id := newID("playlist")

	var got string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id`, id, name, owner).Scan(&got)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	return got, nil
}

// ListPlaylists returns playlists the user owns or collaborates on.
func (s *Store) ListPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		WHERE p.owner = $1 OR c.user_id = $1
		GROUP BY p.id, p.name, u.username
		ORDER BY p.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var playlist Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// DeletePlaylist removes a playlist. Memberships and the activity log
// cascade with it; ownership must be verified by the caller first.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// VerifyPlaylistOwner distinguishes a missing playlist (ErrPlaylistNotFound)
// from an owner mismatch (ErrForbidden). Destructive operations require it.
func (s *Store) VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error {
	var owner string
	err := s.db.QueryRowContext(ctx, `
		SELECT owner
		FROM playlists
		WHERE id = $1`, playlistID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup playlist owner: %w", err)
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}

// VerifyPlaylistAccess admits the owner and recorded collaborators.
func (s *Store) VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error {
	err := s.VerifyPlaylistOwner(ctx, playlistID, userID)
	if !errors.Is(err, ErrForbidden) {
		return err
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		SELECT id
		FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2`, playlistID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("lookup collaboration: %w", err)
	}
	return nil
}

// AddPlaylistSong inserts a membership row and its "add" activity entry
// as one transaction, so the log never diverges from the membership.
func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)`, newID("playlistsong"), playlistID, songID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlaylistSong
		}
		if isForeignKeyViolation(err) {
			return ErrSongNotFound
		}
		return fmt.Errorf("insert playlist song: %w", err)
	}

	if err := appendActivityTx(ctx, tx, playlistID, songID, userID, "add"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add playlist song: %w", err)
	}
	tx = nil
	return nil
}

// RemovePlaylistSong deletes a membership row and appends its "delete"
// activity entry in the same transaction.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistSongNotFound
	}

	if err := appendActivityTx(ctx, tx, playlistID, songID, userID, "delete"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove playlist song: %w", err)
	}
	tx = nil
	return nil
}

// GetPlaylistSongs returns the playlist header plus its song list.
func (s *Store) GetPlaylistSongs(ctx context.Context, playlistID string) (PlaylistWithSongs, error) {
	var playlist PlaylistWithSongs
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner
		WHERE p.id = $1`, playlistID).Scan(&playlist.ID, &playlist.Name, &playlist.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return PlaylistWithSongs{}, ErrPlaylistNotFound
	}
	if err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("get playlist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY s.created_at ASC, s.id ASC`, playlistID)
	if err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs, err := scanSongSummaries(rows)
	if err != nil {
		return PlaylistWithSongs{}, err
	}
	playlist.Songs = songs
	return playlist, nil
}

// ListPlaylistActivities returns the full membership log in chronological
// order, with the acting username and song title resolved.
func (s *Store) ListPlaylistActivities(ctx context.Context, playlistID string) ([]PlaylistActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.username, s.title, a.action, a.time
		FROM playlist_song_activities a
		JOIN users u ON u.id = a.user_id
		JOIN songs s ON s.id = a.song_id
		WHERE a.playlist_id = $1
		ORDER BY a.time ASC, a.id ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist activities: %w", err)
	}
	defer rows.Close()

	activities := make([]PlaylistActivity, 0)
	for rows.Next() {
		var activity PlaylistActivity
		if err := rows.Scan(&activity.Username, &activity.Title, &activity.Action, &activity.Time); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

func appendActivityTx(ctx context.Context, tx *sql.Tx, playlistID, songID, userID, action string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		newID("activity"), playlistID, songID, userID, action, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
