package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientStore reads the client table. Clients are maintained by the CRM; this
// service never writes them.
type ClientStore struct {
	pool *pgxpool.Pool
}

func NewClientStore(pool *pgxpool.Pool) *ClientStore {
	return &ClientStore{pool: pool}
}

const clientColumns = `client_id, company_name, contact_name, email, street_no, postal_code, city, country, created_at`

func (s *ClientStore) GetByNumber(ctx context.Context, clientNumber string) (*Client, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE client_id = $1`, clientNumber)
	return scanClient(row, clientNumber)
}

func (s *ClientStore) GetByEmail(ctx context.Context, email string) (*Client, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE lower(email) = lower($1) ORDER BY created_at DESC LIMIT 1`, email)
	return scanClient(row, email)
}

func scanClient(row pgx.Row, key string) (*Client, error) {
	var c Client
	err := row.Scan(&c.ClientID, &c.CompanyName, &c.ContactName, &c.Email, &c.Street, &c.PostalCode, &c.City, &c.Country, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", key, err)
	}
	return &c, nil
}
