package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS fields (
    id TEXT PRIMARY KEY,
    farmer TEXT NOT NULL,
    name TEXT NOT NULL,
    area_ha DOUBLE PRECISION NOT NULL,
    crop TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS fields_farmer_idx ON fields (farmer);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
