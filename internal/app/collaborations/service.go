package collaborations

import (
	"context"
)

// Store captures the persistence needs for collaboration workflows.
type Store interface {
	VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error
	UserExists(ctx context.Context, id string) error
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error
}

// Service grants and revokes playlist collaborator access. Only the
// playlist owner may manage collaborators.
type Service interface {
	Add(ctx context.Context, playlistID, collaboratorID, ownerID string) (string, error)
	Remove(ctx context.Context, playlistID, collaboratorID, ownerID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Add(ctx context.Context, playlistID, collaboratorID, ownerID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.store.VerifyPlaylistOwner(ctx, playlistID, ownerID); err != nil {
		return "", err
	}
	if err := s.store.UserExists(ctx, collaboratorID); err != nil {
		return "", err
	}
	return s.store.AddCollaboration(ctx, playlistID, collaboratorID)
}

func (s *service) Remove(ctx context.Context, playlistID, collaboratorID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.VerifyPlaylistOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.store.DeleteCollaboration(ctx, playlistID, collaboratorID)
}
