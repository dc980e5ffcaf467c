package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores snapshots in the catalog_snapshots table.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: 3 * time.Second}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Save(ctx context.Context, rec SnapshotRecord) error {
	const sql = `
		INSERT INTO catalog_snapshots (id, book_count, data, created_at)
		VALUES ($1, $2, $3, $4)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, sql, rec.ID, rec.BookCount, rec.Data, rec.CreatedAt); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (SnapshotRecord, error) {
	const sql = `
		SELECT id, book_count, data, created_at
		FROM catalog_snapshots
		WHERE id = $1`

	var rec SnapshotRecord
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql, id).Scan(&rec.ID, &rec.BookCount, &rec.Data, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SnapshotRecord{}, ErrSnapshotNotFound
		}
		return SnapshotRecord{}, fmt.Errorf("get snapshot: %w", err)
	}
	return rec, nil
}

// List returns snapshot metadata, newest first. Data is not loaded.
func (r *PostgresRepo) List(ctx context.Context) ([]SnapshotRecord, error) {
	const sql = `
		SELECT id, book_count, created_at
		FROM catalog_snapshots
		ORDER BY created_at DESC, id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []SnapshotRecord{}
	for rows.Next() {
		var rec SnapshotRecord
		if err := rows.Scan(&rec.ID, &rec.BookCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
