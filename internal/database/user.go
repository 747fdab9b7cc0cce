// internal/database/user.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eranhirsch/nothanks/internal/models"
)

// CreateUser inserts a registered user. The password must already be
// hashed by the caller.
func CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID, _ = uuid.NewRandom()
	}
	q := `
		INSERT INTO users (id, email, password, username, is_ephemeral)
		VALUES ($1, $2, $3, $4, false)
	`
	if _, err := DB.Exec(ctx, q, u.ID, u.Email, u.Password, u.Username); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateEphemeralUser mints a guest account for a visitor who joined a
// table without registering.
func CreateEphemeralUser(ctx context.Context, username string) (*models.User, error) {
	id, _ := uuid.NewRandom()
	u := &models.User{
		ID:          id,
		Username:    username,
		IsEphemeral: true,
	}
	q := `
		INSERT INTO users (id, username, is_ephemeral)
		VALUES ($1, $2, true)
	`
	if _, err := DB.Exec(ctx, q, u.ID, u.Username); err != nil {
		return nil, fmt.Errorf("insert ephemeral user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches a registered user with their password hash for
// login verification.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
		SELECT id, email, password, username, is_ephemeral
		FROM users WHERE email = $1
	`
	var u models.User
	err := DB.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.Username, &u.IsEphemeral)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID fetches a user by primary key.
func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `
		SELECT id, COALESCE(email, ''), username, is_ephemeral
		FROM users WHERE id = $1
	`
	var u models.User
	err := DB.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Username, &u.IsEphemeral)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}
