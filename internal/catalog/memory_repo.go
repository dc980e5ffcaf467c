package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps snapshots for the lifetime of the process.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]SnapshotRecord
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]SnapshotRecord)}
}

func (r *MemoryRepo) Save(_ context.Context, rec SnapshotRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Data = append([]byte(nil), rec.Data...)
	r.records[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (SnapshotRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return SnapshotRecord{}, ErrSnapshotNotFound
	}
	return rec, nil
}

// List returns the stored snapshots, newest first.
func (r *MemoryRepo) List(_ context.Context) ([]SnapshotRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SnapshotRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
