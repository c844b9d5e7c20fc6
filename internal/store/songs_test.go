package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateSong(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	duration := 240
	albumID := "album-1"

	mock.ExpectQuery(`INSERT INTO songs`).
		WithArgs(sqlmock.AnyArg(), "Willow", 2020, "Taylor Swift", "Folk", duration, albumID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-abc"))

	id, err := s.CreateSong(context.Background(), Song{
		Title:     "Willow",
		Year:      2020,
		Performer: "Taylor Swift",
		Genre:     "Folk",
		Duration:  &duration,
		AlbumID:   &albumID,
	})
	if err != nil {
		t.Fatalf("CreateSong error: %v", err)
	}
	if !strings.HasPrefix(id, "song-") {
		t.Fatalf("expected song- prefix, got %q", id)
	}
}

func TestCreateSongUnknownAlbum(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	albumID := "album-missing"
	mock.ExpectQuery(`INSERT INTO songs`).
		WithArgs(sqlmock.AnyArg(), "Willow", 2020, "Taylor Swift", "Folk", nil, albumID, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err = s.CreateSong(context.Background(), Song{
		Title:     "Willow",
		Year:      2020,
		Performer: "Taylor Swift",
		Genre:     "Folk",
		AlbumID:   &albumID,
	})
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestSearchSongsWrapsFragments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT id, title, performer\s+FROM songs\s+WHERE title ILIKE`).
		WithArgs("%wil%", "%taylor%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}).
			AddRow("song-1", "Willow", "Taylor Swift"))

	songs, err := s.SearchSongs(context.Background(), "wil", "taylor")
	if err != nil {
		t.Fatalf("SearchSongs error: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Willow" {
		t.Fatalf("unexpected result: %#v", songs)
	}
}

func TestSearchSongsEmptyFragmentsMatchAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT id, title, performer\s+FROM songs\s+WHERE title ILIKE`).
		WithArgs("%%", "%%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}).
			AddRow("song-1", "Willow", "Taylor Swift").
			AddRow("song-2", "Evermore", "Taylor Swift"))

	songs, err := s.SearchSongs(context.Background(), "", "")
	if err != nil {
		t.Fatalf("SearchSongs error: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
}

func TestGetSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT id, title, year, performer, genre, duration, album_id\s+FROM songs`).
		WithArgs("song-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "performer", "genre", "duration", "album_id"}))

	_, err = s.GetSong(context.Background(), "song-missing")
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestGetSongOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT id, title, year, performer, genre, duration, album_id\s+FROM songs`).
		WithArgs("song-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "performer", "genre", "duration", "album_id"}).
			AddRow("song-1", "Willow", 2020, "Taylor Swift", "Folk", nil, nil))

	song, err := s.GetSong(context.Background(), "song-1")
	if err != nil {
		t.Fatalf("GetSong error: %v", err)
	}
	if song.Duration != nil || song.AlbumID != nil {
		t.Fatalf("expected nil optionals, got %+v", song)
	}
}

func TestDeleteSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(`DELETE FROM songs`).
		WithArgs("song-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.DeleteSong(context.Background(), "song-missing")
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}
