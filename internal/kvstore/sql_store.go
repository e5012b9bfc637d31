package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// SQLStore keeps key-value blobs in a single Postgres table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv_blobs WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not read key %s: %w", key, err)
		log.Error(err)
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		err := fmt.Errorf("could not write key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_blobs WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		err := fmt.Errorf("could not delete key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}
