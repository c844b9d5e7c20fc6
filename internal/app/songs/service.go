package songs

import (
	"context"

	"harmonia/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song store.Song) (string, error)
	SearchSongs(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	GetSong(ctx context.Context, id string) (store.Song, error)
	UpdateSong(ctx context.Context, id string, song store.Song) error
	DeleteSong(ctx context.Context, id string) error
	ListSongsByAlbum(ctx context.Context, albumID string) ([]store.SongSummary, error)
}

// Service coordinates song-related operations.
type Service interface {
	Create(ctx context.Context, song store.Song) (string, error)
	Search(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	Get(ctx context.Context, id string) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
	ListByAlbum(ctx context.Context, albumID string) ([]store.SongSummary, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, song store.Song) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) Search(ctx context.Context, title, performer string) ([]store.SongSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchSongs(ctx, title, performer)
}

func (s *service) Get(ctx context.Context, id string) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.GetSong(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, song store.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateSong(ctx, id, song)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}

func (s *service) ListByAlbum(ctx context.Context, albumID string) ([]store.SongSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongsByAlbum(ctx, albumID)
}
