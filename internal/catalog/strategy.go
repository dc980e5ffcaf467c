package catalog

import (
	"strings"

	"librarycatalog/internal/entity"
)

// SearchStrategy filters books by a query string. Matches keep the order
// of the input.
type SearchStrategy interface {
	Search(books []entity.Book, query string) []entity.Book
}

// TitleSearchStrategy matches a case-insensitive substring of the title.
type TitleSearchStrategy struct{}

func (TitleSearchStrategy) Search(books []entity.Book, query string) []entity.Book {
	return filter(books, query, func(b entity.Book) string { return b.Title })
}

// AuthorSearchStrategy matches a case-insensitive substring of the author.
type AuthorSearchStrategy struct{}

func (AuthorSearchStrategy) Search(books []entity.Book, query string) []entity.Book {
	return filter(books, query, func(b entity.Book) string { return b.Author })
}

// StrategyFor maps a search field name to its strategy.
func StrategyFor(field string) (SearchStrategy, bool) {
	switch field {
	case "", "title":
		return TitleSearchStrategy{}, true
	case "author":
		return AuthorSearchStrategy{}, true
	}
	return nil, false
}

func filter(books []entity.Book, query string, field func(entity.Book) string) []entity.Book {
	q := strings.ToLower(query)
	out := []entity.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(field(b)), q) {
			out = append(out, b)
		}
	}
	return out
}
