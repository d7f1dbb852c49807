// Package mysql backs cart snapshots with a single key-value table:
//
//	CREATE TABLE cart_snapshots (
//	    snapshot_key VARCHAR(191) PRIMARY KEY,
//	    snapshot     MEDIUMBLOB NOT NULL
//	);
package mysql

import (
	"context"
	"database/sql"
	"errors"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
        SELECT snapshot FROM cart_snapshots WHERE snapshot_key = ?
    `, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO cart_snapshots (snapshot_key, snapshot)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE snapshot = VALUES(snapshot)
    `, key, data)
	return err
}
