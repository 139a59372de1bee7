package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLBookingStore keeps booking records in a MySQL table created on first use.
type MySQLBookingStore struct {
	db *sql.DB
}

func NewMySQLBookingStore(db *sql.DB) *MySQLBookingStore {
	return &MySQLBookingStore{
		db: db,
	}
}

// EnsureSchema creates the records table when it does not exist yet.
func (m *MySQLBookingStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS booking_records (
			record_key VARCHAR(191) NOT NULL PRIMARY KEY,
			value      LONGBLOB     NOT NULL,
			version    BIGINT       NOT NULL,
			updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`

	_, err := m.db.ExecContext(ctx, ddl)
	return err
}

func (m *MySQLBookingStore) Read(ctx context.Context, key string) (*domain.Record, error) {
	const q = `SELECT value, version FROM booking_records WHERE record_key = ?`

	var rec domain.Record

	err := m.db.QueryRowContext(ctx, q, key).Scan(&rec.Value, &rec.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &rec, nil
}

func (m *MySQLBookingStore) Write(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	if version == 0 {
		const ins = `INSERT INTO booking_records (record_key, value, version) VALUES (?, ?, 1)`

		if _, err := m.db.ExecContext(ctx, ins, key, value); err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
				return 0, domain.ErrEditConflict
			}

			return 0, err
		}

		return 1, nil
	}

	const upd = `UPDATE booking_records SET value = ?, version = version + 1 WHERE record_key = ? AND version = ?`

	result, err := m.db.ExecContext(ctx, upd, value, key, version)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, domain.ErrEditConflict
	}

	return version + 1, nil
}
