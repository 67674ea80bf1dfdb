package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/domain/entity"
	"github.com/bnema/hoard/internal/logging"
)

type entityStore struct {
	db *sql.DB
}

// NewEntityStore creates a SQLite-backed entity store.
func NewEntityStore(db *sql.DB) port.EntityStore {
	return &entityStore{db: db}
}

func (s *entityStore) Get(ctx context.Context, id string) (*entity.Entity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, data FROM entities WHERE id = ?`, id)

	var e entity.Entity
	if err := row.Scan(&e.ID, &e.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read entity: %w", err)
	}
	return &e, nil
}

func (s *entityStore) Put(ctx context.Context, e *entity.Entity) error {
	if err := e.Valid(); err != nil {
		return err
	}
	log := logging.FromContext(ctx)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entities (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		e.ID, e.Data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}

	log.Debug().Str("id", e.ID).Msg("entity persisted")
	return nil
}

func (s *entityStore) Delete(ctx context.Context, id string) error {
	// Deleting an absent identifier is not an error; DELETE is naturally
	// idempotent here.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return nil
}

func (s *entityStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("failed to delete all entities: %w", err)
	}
	return nil
}
