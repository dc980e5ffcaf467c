package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"librarycatalog/internal/entity"
	"librarycatalog/internal/testutil"
)

func TestSearchStrategies(t *testing.T) {
	dune := entity.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "0441013597"}
	books := []entity.Book{testutil.Orwell, testutil.Huxley, dune}

	tests := []struct {
		name     string
		strategy SearchStrategy
		query    string
		want     []entity.Book
	}{
		{"title exact", TitleSearchStrategy{}, "1984", []entity.Book{testutil.Orwell}},
		{"title case-insensitive", TitleSearchStrategy{}, "brave NEW", []entity.Book{testutil.Huxley}},
		{"title empty query matches all", TitleSearchStrategy{}, "", books},
		{"title ignores author", TitleSearchStrategy{}, "orwell", []entity.Book{}},
		{"author substring", AuthorSearchStrategy{}, "huxley", []entity.Book{testutil.Huxley}},
		{"author shared letters keep order", AuthorSearchStrategy{}, "r", []entity.Book{testutil.Orwell, dune}},
		{"author no match", AuthorSearchStrategy{}, "tolkien", []entity.Book{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.Search(books, tt.query))
		})
	}
}

func TestStrategyFor(t *testing.T) {
	s, ok := StrategyFor("")
	assert.True(t, ok)
	assert.IsType(t, TitleSearchStrategy{}, s)

	s, ok = StrategyFor("author")
	assert.True(t, ok)
	assert.IsType(t, AuthorSearchStrategy{}, s)

	_, ok = StrategyFor("isbn")
	assert.False(t, ok)
}
