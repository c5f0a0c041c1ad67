// Package profiles provides a PostgreSQL-backed repository for
// application-level user profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/dbx"
	"github.com/tokomonggo/server/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const profileColumns = `id, auth_id, name, email, COALESCE(avatar, ''), COALESCE(location, ''), COALESCE(phone, ''), created_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.AuthID, &p.Name, &p.Email, &p.Avatar, &p.Location, &p.Phone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// GetByAuthID returns the profile linked to the given account id,
// or ErrorNotFound.
func (r *PostgresRepository) GetByAuthID(ctx context.Context, authID string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + ` FROM profiles
		WHERE auth_id = $1
	`
	return scanProfile(r.db.QueryRowContext(ctx, query, authID))
}

// Insert creates a profile row. The UNIQUE constraint on auth_id makes a
// concurrent second insert fail with ErrorAlreadyExists; callers re-read
// in that case.
func (r *PostgresRepository) Insert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (auth_id, name, email, avatar, location, phone)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING ` + profileColumns + `
	`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query,
		profile.AuthID, profile.Name, profile.Email, profile.Avatar, profile.Location, profile.Phone))
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}
	return p, nil
}

// Update changes the editable profile fields and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, authID string, name, location, avatar string) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET name = $2, location = NULLIF($3, ''), avatar = NULLIF($4, '')
		WHERE auth_id = $1
		RETURNING ` + profileColumns + `
	`
	return scanProfile(r.db.QueryRowContext(ctx, query, authID, name, location, avatar))
}

// DisplayName returns the display name of the profile owned by the given
// account id, or ErrorNotFound.
func (r *PostgresRepository) DisplayName(ctx context.Context, ownerID string) (string, error) {
	query := `
		SELECT name FROM profiles
		WHERE auth_id = $1
	`
	var name string
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return name, nil
}
