package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"harmonia/internal/app/albums"
	"harmonia/internal/store"
)

func TestCreateAlbum(t *testing.T) {
	f := newFixtures()
	f.albums.create = func(ctx context.Context, name string, year int) (string, error) {
		if name != "Evermore" || year != 2020 {
			t.Fatalf("unexpected args %q %d", name, year)
		}
		return "album-abc", nil
	}

	body := strings.NewReader(`{"name":"Evermore","year":2020}`)
	req := httptest.NewRequest(http.MethodPost, "/albums", body)
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("expected success, got %+v", env)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["albumId"] != "album-abc" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestCreateAlbumValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"year":2020}`, "name is required"},
		{"missing year", `{"name":"Evermore"}`, "year must be a positive number"},
		{"broken json", `{"name":`, "invalid JSON payload"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixtures()
			req := httptest.NewRequest(http.MethodPost, "/albums", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			f.handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Status != "fail" || env.Message != tc.want {
				t.Fatalf("unexpected envelope %+v", env)
			}
		})
	}
}

func TestGetAlbumIncludesSongs(t *testing.T) {
	f := newFixtures()
	f.albums.get = func(ctx context.Context, id string) (store.Album, error) {
		return store.Album{ID: id, Name: "Evermore", Year: 2020}, nil
	}
	f.songs.listByAlbum = func(ctx context.Context, albumID string) ([]store.SongSummary, error) {
		return []store.SongSummary{{ID: "song-1", Title: "Willow", Performer: "Taylor Swift"}}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/albums/album-1", nil)
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var data struct {
		Album struct {
			ID    string              `json:"id"`
			Songs []store.SongSummary `json:"songs"`
		} `json:"album"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Album.ID != "album-1" || len(data.Album.Songs) != 1 {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	f := newFixtures()
	f.albums.get = func(ctx context.Context, id string) (store.Album, error) {
		return store.Album{}, store.ErrAlbumNotFound
	}

	req := httptest.NewRequest(http.MethodGet, "/albums/album-missing", nil)
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Status != "fail" {
		t.Fatalf("expected fail status, got %+v", env)
	}
}

func TestToggleAlbumLikeRequiresAuth(t *testing.T) {
	f := newFixtures()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestToggleAlbumLikeRejectsGarbageToken(t *testing.T) {
	f := newFixtures()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestToggleAlbumLike(t *testing.T) {
	f := newFixtures()
	var gotUser string
	f.albums.toggleLike = func(ctx context.Context, albumID, userID string) (string, error) {
		gotUser = userID
		return "album liked", nil
	}

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	req.Header.Set("Authorization", f.bearer(t, "user-7"))
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotUser != "user-7" {
		t.Fatalf("expected user from token, got %q", gotUser)
	}
	if env := decodeEnvelope(t, rec); env.Message != "album liked" {
		t.Fatalf("unexpected message %+v", env)
	}
}

func TestAlbumLikeCountDataSourceHeader(t *testing.T) {
	for _, source := range []string{albums.SourceCache, albums.SourceServer} {
		source := source
		t.Run(source, func(t *testing.T) {
			f := newFixtures()
			f.albums.likeCount = func(ctx context.Context, albumID string) (albums.LikeCount, error) {
				return albums.LikeCount{Likes: 3, Source: source}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/albums/album-1/likes", nil)
			rec := httptest.NewRecorder()
			f.handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := rec.Header().Get("X-Data-Source"); got != source {
				t.Fatalf("expected X-Data-Source %q, got %q", source, got)
			}
			env := decodeEnvelope(t, rec)
			var data map[string]int
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if data["likes"] != 3 {
				t.Fatalf("unexpected data %v", data)
			}
		})
	}
}

func TestUploadAlbumCover(t *testing.T) {
	f := newFixtures()
	var savedURL string
	f.albums.setCover = func(ctx context.Context, id, coverURL string) error {
		savedURL = coverURL
		return nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/covers", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if savedURL == "" {
		t.Fatalf("cover URL was not stored")
	}
}

func TestUploadAlbumCoverRejectsNonImage(t *testing.T) {
	f := newFixtures()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="cover"; filename="cover.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("plain text"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/covers", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
