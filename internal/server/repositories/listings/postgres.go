// Package listings provides a PostgreSQL-backed repository for classified
// listings, including the search filter composition.
package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/dbx"
	"github.com/tokomonggo/server/internal/server/models"
)

// PostgresRepository implements listing storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listingColumns = `id, user_id, title, description, price, condition, category,
		COALESCE(subcategory, ''), location_province, COALESCE(location_regency, ''),
		COALESCE(contact_info, ''), images, latitude, longitude, created_at`

// Create inserts a new listing. The owner and created_at are set by the
// store at insert time and never change afterwards.
func (r *PostgresRepository) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	images, err := json.Marshal(l.Images)
	if err != nil {
		return nil, fmt.Errorf("images encode error: %w", err)
	}

	query := `
		INSERT INTO listings
			(user_id, title, description, price, condition, category, subcategory,
			 location_province, location_regency, contact_info, images, latitude, longitude)
		VALUES
			($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		l.UserID, l.Title, l.Description, l.Price, l.Condition, l.Category, l.Subcategory,
		l.LocationProvince, l.LocationRegency, l.ContactInfo, images, l.Latitude, l.Longitude,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

// GetByID returns a single listing, or ErrorNotFound when no row matches.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return nil, common.ErrorNotFound
	}
	return scanListing(rows)
}

// Search runs the composed filter query and returns all matching listings,
// newest first. No pagination.
func (r *PostgresRepository) Search(ctx context.Context, c SearchCriteria) ([]*models.Listing, error) {
	query, args := buildSearchQuery(c)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Listing{}
	for rows.Next() {
		item, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// buildSearchQuery accumulates one predicate per present criterion, all
// ANDed. Free text matches title OR description case-insensitively; the
// geo predicate delegates great-circle distance to the earthdistance
// extension with the radius converted from kilometers to meters.
func buildSearchQuery(c SearchCriteria) (string, []any) {
	query := `SELECT ` + listingColumns + ` FROM listings`

	var conds []string
	var args []any
	idx := 1

	if strings.TrimSpace(c.Text) != "" {
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", idx, idx))
		args = append(args, "%"+strings.TrimSpace(c.Text)+"%")
		idx++
	}
	if c.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", idx))
		args = append(args, c.Category)
		idx++
	}
	if c.Subcategory != "" {
		conds = append(conds, fmt.Sprintf("subcategory = $%d", idx))
		args = append(args, c.Subcategory)
		idx++
	}
	if c.Province != "" {
		conds = append(conds, fmt.Sprintf("location_province = $%d", idx))
		args = append(args, c.Province)
		idx++
	}
	if c.Regency != "" {
		conds = append(conds, fmt.Sprintf("location_regency = $%d", idx))
		args = append(args, c.Regency)
		idx++
	}
	if c.Latitude != nil && c.Longitude != nil && c.RadiusKm != nil {
		conds = append(conds, fmt.Sprintf(
			"earth_distance(ll_to_earth(latitude, longitude), ll_to_earth($%d, $%d)) <= $%d", idx, idx+1, idx+2))
		args = append(args, *c.Latitude, *c.Longitude, *c.RadiusKm*1000)
		idx += 3
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	return query, args
}

func scanListing(rows *sql.Rows) (*models.Listing, error) {
	l := &models.Listing{}
	var images []byte
	var lat, lon sql.NullFloat64

	err := rows.Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.Price, &l.Condition, &l.Category,
		&l.Subcategory, &l.LocationProvince, &l.LocationRegency, &l.ContactInfo,
		&images, &lat, &lon, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &l.Images); err != nil {
			return nil, fmt.Errorf("images decode error: %w", err)
		}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if lat.Valid {
		l.Latitude = &lat.Float64
	}
	if lon.Valid {
		l.Longitude = &lon.Float64
	}
	return l, nil
}
