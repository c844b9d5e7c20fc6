package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"harmonia/internal/store"
)

func TestCreatePlaylist(t *testing.T) {
	f := newFixtures()
	f.playlists.create = func(ctx context.Context, name, owner string) (string, error) {
		if name != "Favorites" || owner != "user-1" {
			t.Fatalf("unexpected args %q %q", name, owner)
		}
		return "playlist-abc", nil
	}

	req := httptest.NewRequest(http.MethodPost, "/playlists", strings.NewReader(`{"name":"Favorites"}`))
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["playlistId"] != "playlist-abc" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestCreatePlaylistRequiresAuth(t *testing.T) {
	f := newFixtures()

	req := httptest.NewRequest(http.MethodPost, "/playlists", strings.NewReader(`{"name":"Favorites"}`))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDeletePlaylistOwnership(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not the owner", store.ErrForbidden, http.StatusForbidden},
		{"playlist missing", store.ErrPlaylistNotFound, http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixtures()
			f.playlists.delete = func(ctx context.Context, id, userID string) error {
				return tc.serviceErr
			}

			req := httptest.NewRequest(http.MethodDelete, "/playlists/playlist-1", nil)
			req.Header.Set("Authorization", f.bearer(t, "user-2"))
			rec := httptest.NewRecorder()
			f.handler().ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if env := decodeEnvelope(t, rec); env.Status != "fail" {
				t.Fatalf("expected fail status, got %+v", env)
			}
		})
	}
}

func TestAddPlaylistSong(t *testing.T) {
	f := newFixtures()
	var gotSong, gotUser string
	f.playlists.addSong = func(ctx context.Context, playlistID, songID, userID string) error {
		gotSong, gotUser = songID, userID
		return nil
	}

	req := httptest.NewRequest(http.MethodPost, "/playlists/playlist-1/songs",
		strings.NewReader(`{"songId":"song-1"}`))
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotSong != "song-1" || gotUser != "user-1" {
		t.Fatalf("unexpected args %q %q", gotSong, gotUser)
	}
}

func TestAddPlaylistSongRequiresSongID(t *testing.T) {
	f := newFixtures()

	req := httptest.NewRequest(http.MethodPost, "/playlists/playlist-1/songs", strings.NewReader(`{}`))
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddPlaylistSongDuplicate(t *testing.T) {
	f := newFixtures()
	f.playlists.addSong = func(ctx context.Context, playlistID, songID, userID string) error {
		return store.ErrDuplicatePlaylistSong
	}

	req := httptest.NewRequest(http.MethodPost, "/playlists/playlist-1/songs",
		strings.NewReader(`{"songId":"song-1"}`))
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemovePlaylistSongMissingMembership(t *testing.T) {
	f := newFixtures()
	f.playlists.removeSong = func(ctx context.Context, playlistID, songID, userID string) error {
		return store.ErrPlaylistSongNotFound
	}

	req := httptest.NewRequest(http.MethodDelete, "/playlists/playlist-1/songs",
		strings.NewReader(`{"songId":"song-9"}`))
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlaylistActivitiesEmpty(t *testing.T) {
	f := newFixtures()

	req := httptest.NewRequest(http.MethodGet, "/playlists/playlist-1/activities", nil)
	req.Header.Set("Authorization", f.bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var data struct {
		PlaylistID string                   `json:"playlistId"`
		Activities []store.PlaylistActivity `json:"activities"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.PlaylistID != "playlist-1" {
		t.Fatalf("unexpected playlistId %q", data.PlaylistID)
	}
	if data.Activities == nil {
		t.Fatalf("expected empty activities array, got null")
	}
}
