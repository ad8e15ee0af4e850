package database

import (
	"context"

	"personal-planner/storage"
)

// Repository is the SQLite implementation of storage.Provider
type Repository struct {
	db *DB
}

var _ storage.Provider = (*Repository)(nil)

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.Migrate(ctx)
}

func (r *Repository) Close() error {
	return r.db.Close()
}
