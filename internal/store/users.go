package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash keeps login timing flat when the username is unknown.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// User is an account row without the password hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// CreateUser registers a new account and returns its generated id.
func (s *Store) CreateUser(ctx context.Context, username, password, fullname string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := newID("user")
	var got string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, id, username, hash, fullname).Scan(&got)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return got, nil
}

// VerifyUserCredential validates a username/password pair and returns the
// user id on success.
func (s *Store) VerifyUserCredential(ctx context.Context, username, password string) (string, error) {
	var (
		id   string
		hash []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE username = $1`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return id, nil
}

// UserExists reports ErrUserNotFound when no account carries the id.
func (s *Store) UserExists(ctx context.Context, id string) error {
	var got string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	return nil
}

// AddRefreshToken persists an issued refresh token.
func (s *Store) AddRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO authentications (token)
		VALUES ($1)`, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// VerifyRefreshToken checks a refresh token is still registered.
func (s *Store) VerifyRefreshToken(ctx context.Context, token string) error {
	var got string
	err := s.db.QueryRowContext(ctx, `
		SELECT token
		FROM authentications
		WHERE token = $1`, token).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRefreshTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup refresh token: %w", err)
	}
	return nil
}

// DeleteRefreshToken revokes a refresh token.
func (s *Store) DeleteRefreshToken(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM authentications
		WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}
