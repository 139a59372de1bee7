package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

type PostgresBookingStore struct {
	db *pgxpool.Pool
}

func NewPostgresBookingStore(db *pgxpool.Pool) *PostgresBookingStore {
	return &PostgresBookingStore{
		db: db,
	}
}

func (p *PostgresBookingStore) Read(ctx context.Context, key string) (*domain.Record, error) {
	query := `
		SELECT value, version
		FROM booking_records
		WHERE key = $1
	`

	var rec domain.Record

	err := p.db.QueryRow(ctx, query, key).Scan(&rec.Value, &rec.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &rec, nil
}

func (p *PostgresBookingStore) Write(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	if version == 0 {
		return p.insert(ctx, key, value)
	}

	query := `
		UPDATE booking_records
		SET value = $1, version = version + 1, updated_at = NOW()
		WHERE key = $2 AND version = $3
		RETURNING version
	`

	var newVersion int64

	err := p.db.QueryRow(ctx, query, value, key, version).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrEditConflict
		}

		return 0, err
	}

	return newVersion, nil
}

func (p *PostgresBookingStore) insert(ctx context.Context, key string, value []byte) (int64, error) {
	query := `
		INSERT INTO booking_records (key, value, version)
		VALUES ($1, $2, 1)
		RETURNING version
	`

	var newVersion int64

	err := p.db.QueryRow(ctx, query, key, value).Scan(&newVersion)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, domain.ErrEditConflict
		}

		return 0, err
	}

	return newVersion, nil
}
