package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"beavernorth-backend/pkg/models"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the hosted Postgres database and returns a
// lead store backed by it.
func NewPostgresStore(ctx context.Context, databaseURL string) (LeadStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Insert(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	lead.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO leads (
			id, first_name, last_name, gender, date_of_birth,
			smoking_status, province, insurance_product,
			email, country_code, phone, phone_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		lead.ID, lead.FirstName, lead.LastName, lead.Gender, lead.DateOfBirth,
		lead.SmokingStatus, lead.Province, lead.InsuranceProduct,
		lead.Email, lead.CountryCode, lead.Phone, lead.PhoneHash, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting lead: %w", err)
	}
	return nil
}

func (s *postgresStore) ExistsByPhoneHash(ctx context.Context, phoneHash string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM leads WHERE phone_hash = $1)`, phoneHash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking for existing lead: %w", err)
	}
	return exists, nil
}

func (s *postgresStore) Close() {
	s.pool.Close()
}
