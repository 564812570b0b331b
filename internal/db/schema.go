package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		client_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL DEFAULT '',
		contact_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		street_no TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS clients_email_idx ON clients (lower(email))`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id UUID PRIMARY KEY,
		client_id TEXT NULL,
		company_name TEXT NOT NULL,
		street_no TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		project_number TEXT NULL,
		project_name TEXT NULL,
		project_type TEXT NULL,
		offer_number TEXT NOT NULL UNIQUE,
		delivery_time_min INTEGER NULL,
		delivery_time_max INTEGER NULL,
		discount_type TEXT NULL,
		discount_value NUMERIC(12,2) NULL,
		currency TEXT NOT NULL DEFAULT 'EUR',
		total_price NUMERIC(12,2) NOT NULL,
		image_urls JSONB NOT NULL DEFAULT '[]',
		document_url TEXT NULL,
		record JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS proposals_client_idx ON proposals (client_id)`,
}

// Migrate creates the tables this service reads and writes if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
