package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned when no stored snapshot has the requested ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRecord is a captured snapshot as kept by a SnapshotRepository.
type SnapshotRecord struct {
	ID        string    `json:"id"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	Data      []byte    `json:"-"`
}

// SnapshotRepository defines the contract for snapshot storage.
type SnapshotRepository interface {
	Save(ctx context.Context, rec SnapshotRecord) error
	Get(ctx context.Context, id string) (SnapshotRecord, error)
	List(ctx context.Context) ([]SnapshotRecord, error)
}
