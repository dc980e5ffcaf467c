// Command demo walks a catalog through adding and removing books, searching
// and snapshotting. Catalog notifications are appended to the notification
// log.
package main

import (
	"fmt"
	"io"
	"os"

	"librarycatalog/internal/catalog"
	"librarycatalog/internal/config"
	"librarycatalog/internal/entity"
	"librarycatalog/internal/platform/logger"
)

func main() {
	log := logger.New().Console().MustMake().Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sink, err := logger.OpenSink(cfg.LogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LogPath).Msg("cannot open notification log")
	}
	defer sink.Close()

	if err := run(os.Stdout, sink); err != nil {
		log.Error().Err(err).Msg("demo failed")
		return
	}
	log.Info().Str("path", cfg.LogPath).Msg("notifications written")
}

func run(out io.Writer, sink catalog.Notifier) error {
	c := catalog.New()
	c.RegisterObserver(catalog.NewLoggingObserver(sink))

	factory := entity.BookFactory{}
	var books []entity.Book
	for _, fields := range []entity.Fields{
		{"title": "1984", "author": "George Orwell", "isbn": "123456"},
		{"title": "Brave New World", "author": "Aldous Huxley", "isbn": "654321"},
	} {
		e, err := factory.Create(fields)
		if err != nil {
			return err
		}
		books = append(books, e.(entity.Book))
	}

	catalog.NewAddBookCommand(c, books[0]).Execute()
	catalog.NewAddBookCommand(c, books[1]).Execute()

	snap, err := c.CaptureSnapshot()
	if err != nil {
		return err
	}

	catalog.NewRemoveBookCommand(c, "654321").Execute()

	fmt.Fprintln(out, "Books in catalog:")
	for _, b := range c.Books() {
		fmt.Fprintf(out, "  %s by %s (ISBN %s)\n", b.Title, b.Author, b.ISBN)
	}
	fmt.Fprintf(out, "Title search %q: %d match(es)\n", "1984", len(c.Search(catalog.TitleSearchStrategy{}, "1984")))
	fmt.Fprintf(out, "Author search %q: %d match(es)\n", "huxley", len(c.Search(catalog.AuthorSearchStrategy{}, "huxley")))

	if err := c.RestoreSnapshot(snap); err != nil {
		return err
	}
	fmt.Fprintf(out, "After restoring the snapshot: %d book(s)\n", c.Len())
	return nil
}
