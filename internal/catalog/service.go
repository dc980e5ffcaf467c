package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"librarycatalog/internal/entity"
)

// Service shares one Catalog between concurrent callers and archives its
// snapshots in a SnapshotRepository.
type Service struct {
	mu      sync.Mutex
	catalog *Catalog
	repo    SnapshotRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewService creates a new catalog service.
func NewService(c *Catalog, repo SnapshotRepository, log zerolog.Logger) *Service {
	return &Service{catalog: c, repo: repo, log: log, now: time.Now}
}

// execute runs cmd while holding the catalog lock. Only commands bound to
// s.catalog are passed in; the lock guards nothing else.
func (s *Service) execute(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd.Execute()
}

func (s *Service) Add(b entity.Book) {
	s.execute(NewAddBookCommand(s.catalog, b))
}

func (s *Service) Remove(isbn string) {
	s.execute(NewRemoveBookCommand(s.catalog, isbn))
}

func (s *Service) Get(isbn string) (entity.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(isbn)
}

func (s *Service) Search(strategy SearchStrategy, query string) []entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(strategy, query)
}

// Capture snapshots the catalog and stores the result under a new ID.
func (s *Service) Capture(ctx context.Context) (SnapshotRecord, error) {
	s.mu.Lock()
	snap, err := s.catalog.CaptureSnapshot()
	count := s.catalog.Len()
	s.mu.Unlock()
	if err != nil {
		return SnapshotRecord{}, err
	}

	rec := SnapshotRecord{
		ID:        uuid.NewString(),
		BookCount: count,
		CreatedAt: s.now().UTC(),
		Data:      snap.Bytes(),
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return SnapshotRecord{}, err
	}
	s.log.Info().Str("snapshot_id", rec.ID).Int("books", count).Msg("snapshot captured")
	return rec, nil
}

// Restore replaces the catalog contents with the stored snapshot id.
func (s *Service) Restore(ctx context.Context, id string) (SnapshotRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return SnapshotRecord{}, err
	}

	s.mu.Lock()
	err = s.catalog.RestoreSnapshot(SnapshotFromBytes(rec.Data))
	s.mu.Unlock()
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("restore snapshot %s: %w", id, err)
	}
	s.log.Info().Str("snapshot_id", rec.ID).Int("books", rec.BookCount).Msg("snapshot restored")
	return rec, nil
}

func (s *Service) Snapshots(ctx context.Context) ([]SnapshotRecord, error) {
	return s.repo.List(ctx)
}
