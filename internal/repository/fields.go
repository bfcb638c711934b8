// Package repository provides persistence implementations for the field store.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avaolo/gatekeeper/internal/models"
)

// ErrNotFound is returned when a requested field does not exist or is not
// owned by the requesting farmer.
var ErrNotFound = errors.New("field not found")

// PostgresFieldRepository implements field persistence using a PostgreSQL database.
type PostgresFieldRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresFieldRepository creates a new PostgresFieldRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresFieldRepository(db *sql.DB) *PostgresFieldRepository {
	return &PostgresFieldRepository{DB: db}
}

// ListByFarmer returns all fields owned by the given farmer, ordered by name.
func (r *PostgresFieldRepository) ListByFarmer(ctx context.Context, farmer string) ([]models.Field, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, farmer, name, area_ha, crop FROM fields WHERE farmer = $1 ORDER BY name`,
		farmer,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []models.Field{}
	for rows.Next() {
		var f models.Field
		if err := rows.Scan(&f.ID, &f.Farmer, &f.Name, &f.AreaHa, &f.Crop); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// GetByID returns the field with the given id if it is owned by farmer.
// Returns ErrNotFound when no such row exists.
func (r *PostgresFieldRepository) GetByID(ctx context.Context, farmer, id string) (models.Field, error) {
	var f models.Field
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, farmer, name, area_ha, crop FROM fields WHERE id = $1 AND farmer = $2`,
		id, farmer,
	).Scan(&f.ID, &f.Farmer, &f.Name, &f.AreaHa, &f.Crop)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Field{}, ErrNotFound
	}
	return f, err
}

// Create inserts a new field row.
func (r *PostgresFieldRepository) Create(ctx context.Context, field models.Field) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO fields (id, farmer, name, area_ha, crop) VALUES ($1, $2, $3, $4, $5)`,
		field.ID, field.Farmer, field.Name, field.AreaHa, field.Crop,
	)
	return err
}
