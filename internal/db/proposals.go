package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProposalStore struct {
	pool *pgxpool.Pool
}

func NewProposalStore(pool *pgxpool.Pool) *ProposalStore {
	return &ProposalStore{pool: pool}
}

func (s *ProposalStore) Create(ctx context.Context, p *Proposal) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	const query = `
		INSERT INTO proposals (
			id, client_id, company_name, street_no, postal_code, city, country,
			project_number, project_name, project_type, offer_number,
			delivery_time_min, delivery_time_max, discount_type, discount_value,
			currency, total_price, image_urls, document_url, record
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at`

	err = s.pool.QueryRow(ctx, query,
		p.ID,
		optionalText(p.ClientID),
		p.CompanyName,
		p.Street,
		p.PostalCode,
		p.City,
		p.Country,
		optionalText(p.ProjectNumber),
		optionalText(p.ProjectName),
		optionalText(p.ProjectType),
		p.OfferNumber,
		optionalInt(p.DeliveryTimeMin),
		optionalInt(p.DeliveryTimeMax),
		optionalText(p.DiscountType),
		optionalFloat(p.DiscountType != "", p.DiscountValue),
		p.Currency,
		p.TotalPrice,
		imagesJSON,
		optionalText(p.DocumentURL),
		recordJSON,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert proposal %s: %w", p.OfferNumber, err)
	}
	return nil
}

func (s *ProposalStore) GetByOfferNumber(ctx context.Context, offerNumber string) (*Proposal, error) {
	const query = `
		SELECT id, COALESCE(client_id, ''), company_name, street_no, postal_code, city, country,
			COALESCE(project_number, ''), COALESCE(project_name, ''), COALESCE(project_type, ''),
			offer_number, delivery_time_min, delivery_time_max, COALESCE(discount_type, ''),
			discount_value::float8, currency, total_price::float8, image_urls,
			COALESCE(document_url, ''), record, created_at
		FROM proposals
		WHERE offer_number = $1`

	var (
		p          Proposal
		minDays    pgtype.Int4
		maxDays    pgtype.Int4
		discount   pgtype.Float8
		imagesJSON []byte
		recordJSON []byte
		createdAt  time.Time
	)
	err := s.pool.QueryRow(ctx, query, offerNumber).Scan(
		&p.ID, &p.ClientID, &p.CompanyName, &p.Street, &p.PostalCode, &p.City, &p.Country,
		&p.ProjectNumber, &p.ProjectName, &p.ProjectType,
		&p.OfferNumber, &minDays, &maxDays, &p.DiscountType,
		&discount, &p.Currency, &p.TotalPrice, &imagesJSON,
		&p.DocumentURL, &recordJSON, &createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", offerNumber, err)
	}

	p.DeliveryTimeMin = int(minDays.Int32)
	p.DeliveryTimeMax = int(maxDays.Int32)
	p.DiscountValue = discount.Float64
	p.CreatedAt = createdAt
	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images of %s: %w", offerNumber, err)
	}
	if err := json.Unmarshal(recordJSON, &p.Record); err != nil {
		return nil, fmt.Errorf("failed to decode record of %s: %w", offerNumber, err)
	}
	return &p, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func optionalInt(v int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(v), Valid: v > 0}
}

func optionalFloat(valid bool, v float64) pgtype.Float8 {
	return pgtype.Float8{Float64: v, Valid: valid}
}
