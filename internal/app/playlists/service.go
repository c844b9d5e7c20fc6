package playlists

import (
	"context"

	"harmonia/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, owner string) (string, error)
	ListPlaylists(ctx context.Context, userID string) ([]store.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error
	VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error
	AddPlaylistSong(ctx context.Context, playlistID, songID, userID string) error
	RemovePlaylistSong(ctx context.Context, playlistID, songID, userID string) error
	GetPlaylistSongs(ctx context.Context, playlistID string) (store.PlaylistWithSongs, error)
	ListPlaylistActivities(ctx context.Context, playlistID string) ([]store.PlaylistActivity, error)
}

// Service coordinates playlist membership, access control and the
// membership activity log.
type Service interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, userID string) ([]store.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
	AddSong(ctx context.Context, playlistID, songID, userID string) error
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	Songs(ctx context.Context, playlistID, userID string) (store.PlaylistWithSongs, error)
	Activities(ctx context.Context, playlistID, userID string) ([]store.PlaylistActivity, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, name, owner string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreatePlaylist(ctx, name, owner)
}

func (s *service) List(ctx context.Context, userID string) ([]store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, userID)
}

// Delete requires ownership; collaborator access is not enough to
// destroy a playlist.
func (s *service) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.VerifyPlaylistOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

func (s *service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.VerifyPlaylistOwner(ctx, playlistID, userID)
}

func (s *service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.VerifyPlaylistAccess(ctx, playlistID, userID)
}

// AddSong records a membership change on behalf of userID. Access must
// be verified first; the membership insert and the activity append are
// one transaction in the store.
func (s *service) AddSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.AddPlaylistSong(ctx, playlistID, songID, userID)
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.RemovePlaylistSong(ctx, playlistID, songID, userID)
}

func (s *service) Songs(ctx context.Context, playlistID, userID string) (store.PlaylistWithSongs, error) {
	if err := ctx.Err(); err != nil {
		return store.PlaylistWithSongs{}, err
	}
	if err := s.store.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		return store.PlaylistWithSongs{}, err
	}
	return s.store.GetPlaylistSongs(ctx, playlistID)
}

func (s *service) Activities(ctx context.Context, playlistID, userID string) ([]store.PlaylistActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistActivities(ctx, playlistID)
}
