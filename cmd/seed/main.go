// Command seed loads a YAML book list and stores it as a catalog snapshot,
// ready to be restored through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"librarycatalog/internal/catalog"
	"librarycatalog/internal/config"
	"librarycatalog/internal/entity"
	"librarycatalog/internal/platform/logger"
	"librarycatalog/internal/platform/postgres"
)

type seedFile struct {
	Books []entity.Book `yaml:"books"`
}

func main() {
	path := flag.String("file", "db/seed/books.yaml", "YAML file with a top-level books list")
	flag.Parse()

	log := logger.New().Console().MustMake().Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	dsn, err := cfg.RequireDSN()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot seed without a database")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open seed file")
	}
	defer f.Close()

	books, err := loadBooks(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("invalid seed file")
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", config.RedactDSN(dsn)).Msg("cannot open database")
	}
	defer pool.Close()

	rec, err := buildRecord(books, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build snapshot")
	}
	if err := catalog.NewPostgresRepo(pool).Save(ctx, rec); err != nil {
		log.Fatal().Err(err).Msg("cannot save snapshot")
	}
	log.Info().Str("snapshot_id", rec.ID).Int("books", rec.BookCount).Msg("seed snapshot stored")
}

// loadBooks decodes and checks a seed file. Every book needs all three fields.
func loadBooks(r io.Reader) ([]entity.Book, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sf seedFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	validate := validator.New()
	for i, b := range sf.Books {
		if err := validate.Struct(b); err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
	}
	return sf.Books, nil
}

func buildRecord(books []entity.Book, now time.Time) (catalog.SnapshotRecord, error) {
	snap, err := catalog.SnapshotOf(books)
	if err != nil {
		return catalog.SnapshotRecord{}, err
	}
	n, err := snap.BookCount()
	if err != nil {
		return catalog.SnapshotRecord{}, err
	}
	return catalog.SnapshotRecord{
		ID:        uuid.NewString(),
		BookCount: n,
		CreatedAt: now,
		Data:      snap.Bytes(),
	}, nil
}
