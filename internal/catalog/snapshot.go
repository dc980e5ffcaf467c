package catalog

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"librarycatalog/internal/entity"
)

const snapshotVersion = 1

// ErrSnapshotDecode is returned when snapshot data is not a valid encoding
// of a book list.
var ErrSnapshotDecode = errors.New("snapshot decode failed")

var snapshotJSON = jsoniter.Config{
	EscapeHTML:             false,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// Snapshot is an opaque copy of a catalog's books at capture time.
type Snapshot struct {
	data []byte
}

// SnapshotFromBytes wraps previously captured snapshot data. The data is
// only checked when the snapshot is restored.
func SnapshotFromBytes(data []byte) Snapshot {
	return Snapshot{data: append([]byte(nil), data...)}
}

// Bytes returns the encoded snapshot.
func (s Snapshot) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

type snapshotDoc struct {
	Version int               `json:"version"`
	Books   *[]snapshotRecord `json:"books"`
}

type snapshotRecord struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
}

// CaptureSnapshot encodes the current books in catalog order.
func (c *Catalog) CaptureSnapshot() (Snapshot, error) {
	books := c.Books()
	records := make([]snapshotRecord, len(books))
	for i := range books {
		records[i] = snapshotRecord{Title: &books[i].Title, Author: &books[i].Author, ISBN: &books[i].ISBN}
	}
	data, err := snapshotJSON.Marshal(snapshotDoc{Version: snapshotVersion, Books: &records})
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return Snapshot{data: data}, nil
}

// RestoreSnapshot replaces every book with the snapshot's contents.
// Observers are not notified. On error the catalog is left unchanged.
func (c *Catalog) RestoreSnapshot(s Snapshot) error {
	books, err := decodeSnapshot(s.data)
	if err != nil {
		return err
	}
	c.replace(books)
	return nil
}

// BookCount reports how many records the snapshot holds.
func (s Snapshot) BookCount() (int, error) {
	books, err := decodeSnapshot(s.data)
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// SnapshotOf encodes books as a snapshot without going through a catalog.
func SnapshotOf(books []entity.Book) (Snapshot, error) {
	c := New()
	c.replace(books)
	return c.CaptureSnapshot()
}

func decodeSnapshot(data []byte) ([]entity.Book, error) {
	var doc snapshotDoc
	if err := snapshotJSON.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}
	if doc.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotDecode, doc.Version)
	}
	if doc.Books == nil {
		return nil, fmt.Errorf("%w: missing books", ErrSnapshotDecode)
	}

	books := make([]entity.Book, 0, len(*doc.Books))
	for i, r := range *doc.Books {
		switch {
		case r.Title == nil:
			return nil, fmt.Errorf("%w: record %d: missing title", ErrSnapshotDecode, i)
		case r.Author == nil:
			return nil, fmt.Errorf("%w: record %d: missing author", ErrSnapshotDecode, i)
		case r.ISBN == nil:
			return nil, fmt.Errorf("%w: record %d: missing isbn", ErrSnapshotDecode, i)
		}
		books = append(books, entity.Book{Title: *r.Title, Author: *r.Author, ISBN: *r.ISBN})
	}
	return books, nil
}
