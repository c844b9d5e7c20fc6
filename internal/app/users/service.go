package users

import (
	"context"
)

// Store captures the persistence needs for account workflows.
type Store interface {
	CreateUser(ctx context.Context, username, password, fullname string) (string, error)
	VerifyUserCredential(ctx context.Context, username, password string) (string, error)
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Service coordinates account registration and credential checks.
type Service interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	VerifyCredential(ctx context.Context, username, password string) (string, error)
	StoreRefreshToken(ctx context.Context, token string) error
	CheckRefreshToken(ctx context.Context, token string) error
	RevokeRefreshToken(ctx context.Context, token string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Register(ctx context.Context, username, password, fullname string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, username, password, fullname)
}

func (s *service) VerifyCredential(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.VerifyUserCredential(ctx, username, password)
}

func (s *service) StoreRefreshToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddRefreshToken(ctx, token)
}

func (s *service) CheckRefreshToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.VerifyRefreshToken(ctx, token)
}

func (s *service) RevokeRefreshToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteRefreshToken(ctx, token)
}
