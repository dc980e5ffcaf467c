package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/entity"
	"librarycatalog/internal/testutil"
)

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) Save(ctx context.Context, rec SnapshotRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockSnapshotRepo) Get(ctx context.Context, id string) (SnapshotRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(SnapshotRecord), args.Error(1)
}

func (m *mockSnapshotRepo) List(ctx context.Context) ([]SnapshotRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SnapshotRecord), args.Error(1)
}

func TestService_CaptureAndRestore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(New(), NewMemoryRepo(), zerolog.Nop())

	svc.Add(testutil.Orwell)
	rec, err := svc.Capture(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 1, rec.BookCount)

	svc.Add(testutil.Huxley)
	svc.Remove(testutil.Orwell.ISBN)

	restored, err := svc.Restore(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, restored.ID)
	assert.Equal(t, []entity.Book{testutil.Orwell}, svc.Search(TitleSearchStrategy{}, ""))

	list, err := svc.Snapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Capture(t *testing.T) {
	ctx := context.Background()

	t.Run("stores record", func(t *testing.T) {
		repo := new(mockSnapshotRepo)
		svc := NewService(New(), repo, zerolog.Nop())
		fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		svc.now = func() time.Time { return fixed }
		svc.Add(testutil.Huxley)

		repo.On("Save", ctx, mock.MatchedBy(func(rec SnapshotRecord) bool {
			return rec.BookCount == 1 && rec.CreatedAt.Equal(fixed) && len(rec.Data) > 0
		})).Return(nil)

		rec, err := svc.Capture(ctx)
		require.NoError(t, err)
		assert.Equal(t, fixed, rec.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("save error", func(t *testing.T) {
		repo := new(mockSnapshotRepo)
		svc := NewService(New(), repo, zerolog.Nop())
		repo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Capture(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := new(mockSnapshotRepo)
		svc := NewService(New(), repo, zerolog.Nop())
		repo.On("Get", ctx, "missing").Return(SnapshotRecord{}, ErrSnapshotNotFound)

		_, err := svc.Restore(ctx, "missing")
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("corrupt data leaves catalog", func(t *testing.T) {
		repo := new(mockSnapshotRepo)
		svc := NewService(New(), repo, zerolog.Nop())
		svc.Add(testutil.Orwell)
		repo.On("Get", ctx, "bad").Return(SnapshotRecord{ID: "bad", Data: []byte(`{"version":1,"books":[{}]}`)}, nil)

		_, err := svc.Restore(ctx, "bad")
		assert.ErrorIs(t, err, ErrSnapshotDecode)
		assert.Equal(t, []entity.Book{testutil.Orwell}, svc.Search(TitleSearchStrategy{}, ""))
	})
}

func TestService_ConcurrentCommands(t *testing.T) {
	c := New()
	obs := &testutil.RecordingObserver{}
	c.RegisterObserver(obs)
	svc := NewService(c, NewMemoryRepo(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc.Add(entity.Book{Title: "t", Author: "a", ISBN: string(rune('A' + i))})
		}(i)
	}
	wg.Wait()

	assert.Len(t, svc.Search(AuthorSearchStrategy{}, "a"), 50)
	assert.Len(t, obs.Messages(), 50)
}

func TestService_ConcurrentAddRemove(t *testing.T) {
	c := New()
	svc := NewService(c, NewMemoryRepo(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		isbn := string(rune('A' + i))
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Add(entity.Book{Title: "t", Author: "a", ISBN: isbn})
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.Get(isbn)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i += 2 {
		svc.Remove(string(rune('A' + i)))
	}
	assert.Equal(t, 25, c.Len())
}
