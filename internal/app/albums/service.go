package albums

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"harmonia/internal/cache"
	"harmonia/internal/store"
)

// likesTTL bounds staleness even if an invalidation is ever missed.
const likesTTL = 30 * time.Minute

// Like-count read sources, surfaced to the handler as metadata.
const (
	SourceCache  = "cache"
	SourceServer = "server"
)

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, name string, year int) (string, error)
	ListAlbums(ctx context.Context) ([]store.Album, error)
	GetAlbum(ctx context.Context, id string) (store.Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	DeleteAlbum(ctx context.Context, id string) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
	ToggleAlbumLike(ctx context.Context, albumID, userID string) (bool, error)
	CountAlbumLikes(ctx context.Context, albumID string) (int, error)
}

// LikeCount pairs the count with where the value came from.
type LikeCount struct {
	Likes  int
	Source string
}

// Service coordinates album CRUD and the like-count cache-aside path.
type Service interface {
	Create(ctx context.Context, name string, year int) (string, error)
	List(ctx context.Context) ([]store.Album, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, coverURL string) error
	ToggleLike(ctx context.Context, albumID, userID string) (string, error)
	LikeCount(ctx context.Context, albumID string) (LikeCount, error)
}

type service struct {
	store Store
	cache cache.Cache
}

// New constructs a Service backed by the provided Store and Cache.
func New(store Store, cache cache.Cache) Service {
	return &service{store: store, cache: cache}
}

func (s *service) Create(ctx context.Context, name string, year int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateAlbum(ctx, name, year)
}

func (s *service) List(ctx context.Context) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAlbums(ctx)
}

func (s *service) Get(ctx context.Context, id string) (store.Album, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, err
	}
	return s.store.GetAlbum(ctx, id)
}

func (s *service) Update(ctx context.Context, id, name string, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateAlbum(ctx, id, name, year)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	// The album's likes went with it; the cached count must not outlive them.
	return s.cache.Delete(ctx, likesKey(id))
}

func (s *service) SetCover(ctx context.Context, id, coverURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.SetAlbumCover(ctx, id, coverURL)
}

// ToggleLike flips the like state for (albumID, userID) and returns a
// user-facing confirmation. The cached count is invalidated after the
// store mutation commits, whichever way the toggle went, so the next
// read recomputes from the authoritative rows.
func (s *service) ToggleLike(ctx context.Context, albumID, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	liked, err := s.store.ToggleAlbumLike(ctx, albumID, userID)
	if err != nil {
		return "", err
	}

	if err := s.cache.Delete(ctx, likesKey(albumID)); err != nil {
		return "", err
	}

	if liked {
		return "album liked", nil
	}
	return "album like removed", nil
}

// LikeCount serves the count from cache when possible and recomputes from
// the store on a miss. Cache unavailability downgrades to a miss; it is
// never surfaced to the caller.
func (s *service) LikeCount(ctx context.Context, albumID string) (LikeCount, error) {
	if err := ctx.Err(); err != nil {
		return LikeCount{}, err
	}

	key := likesKey(albumID)
	if value, hit, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("album_id", albumID).Msg("likes cache unavailable, recomputing")
	} else if hit {
		likes, err := strconv.Atoi(value)
		if err == nil {
			return LikeCount{Likes: likes, Source: SourceCache}, nil
		}
		log.Warn().Str("album_id", albumID).Str("value", value).Msg("malformed cached like count, recomputing")
	}

	likes, err := s.store.CountAlbumLikes(ctx, albumID)
	if err != nil {
		return LikeCount{}, err
	}

	if err := s.cache.Set(ctx, key, strconv.Itoa(likes), likesTTL); err != nil {
		log.Warn().Err(err).Str("album_id", albumID).Msg("failed to cache like count")
	}
	return LikeCount{Likes: likes, Source: SourceServer}, nil
}

func likesKey(albumID string) string {
	return "album_likes:" + albumID
}
