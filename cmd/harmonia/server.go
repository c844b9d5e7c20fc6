package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"

	"harmonia/internal/app/albums"
	"harmonia/internal/app/collaborations"
	"harmonia/internal/app/playlists"
	"harmonia/internal/app/songs"
	"harmonia/internal/app/users"
	"harmonia/internal/auth"
	"harmonia/internal/cache"
	"harmonia/internal/httpapi"
	"harmonia/internal/store"
	"harmonia/internal/uploads"
)

func newHTTPHandler(ctx context.Context, cfg Config, db *sql.DB) (http.Handler, error) {
	dataStore := store.New(db)

	likesCache := cache.NewRedis(redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	}))

	coverStorage, err := uploads.New(ctx, uploads.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenAge)

	albumSvc := albums.New(dataStore, likesCache)
	songSvc := songs.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	collabSvc := collaborations.New(dataStore)
	userSvc := users.New(dataStore)

	server := httpapi.New(albumSvc, songSvc, playlistSvc, collabSvc, userSvc, tokens, coverStorage)
	return server.Routes(), nil
}
