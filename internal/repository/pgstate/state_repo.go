package pgstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	tableSQL = `CREATE TABLE IF NOT EXISTS storefront_state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	expires_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	indexSQL = `CREATE INDEX IF NOT EXISTS storefront_state_expires_at_idx ON storefront_state (expires_at)`

	getSQL = `SELECT value FROM storefront_state
WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`

	upsertSQL = `INSERT INTO storefront_state (key, value, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`

	deleteSQL = `DELETE FROM storefront_state WHERE key = $1`

	purgeSQL = `DELETE FROM storefront_state WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

// StateRepository persists client state as JSONB rows with an optional
// expiry. Expired rows are invisible to reads and removed by PurgeExpired.
type StateRepository struct {
	db  DBTX
	now func() time.Time
}

var _ domain.StateStore = (*StateRepository)(nil)

func NewStateRepository(db DBTX) *StateRepository {
	return &StateRepository{db: db, now: time.Now}
}

// EnsureSchema creates the state table when it does not exist yet.
func (r *StateRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{tableSQL, indexSQL} {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create state schema: %w", err)
		}
	}
	return nil
}

func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	var value []byte
	err := r.db.QueryRow(ctx, getSQL, key).Scan(&value)
	logger.DBQuery("state.get", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return value, true, nil
}

func (r *StateRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := r.now().Add(ttl)
		expiresAt = &t
	}

	start := time.Now()
	_, err := r.db.Exec(ctx, upsertSQL, key, value, expiresAt)
	logger.DBQuery("state.set", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	start := time.Now()
	_, err := r.db.Exec(ctx, deleteSQL, key)
	logger.DBQuery("state.delete", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes expired rows and reports how many were removed.
func (r *StateRepository) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, purgeSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired state: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunJanitor purges expired rows every interval until ctx is done.
func (r *StateRepository) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.PurgeExpired(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("State purge failed")
				continue
			}
			if n > 0 {
				logger.Debug().Int64("rows", n).Msg("Purged expired state")
			}
		}
	}
}

func ignoreNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
