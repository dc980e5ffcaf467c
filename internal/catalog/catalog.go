// Package catalog keeps an in-memory set of books keyed by ISBN. Mutations
// are issued as commands and announced to registered observers, the state
// can be captured and restored as snapshots, and lookups go through
// pluggable search strategies.
//
// A Catalog is not safe for concurrent use; Service serializes access for
// callers that share one.
package catalog

import (
	"fmt"

	"librarycatalog/internal/entity"
)

// Catalog owns the books and the observers interested in their changes.
type Catalog struct {
	books     map[string]entity.Book
	order     []string
	observers []Observer
}

func New() *Catalog {
	return &Catalog{books: make(map[string]entity.Book)}
}

// RegisterObserver appends o to the notification list. Registering the same
// observer twice makes it receive every message twice.
func (c *Catalog) RegisterObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// Add stores b under its ISBN, replacing any book already there. A replaced
// book keeps its position in the catalog order.
func (c *Catalog) Add(b entity.Book) {
	if _, exists := c.books[b.ISBN]; !exists {
		c.order = append(c.order, b.ISBN)
	}
	c.books[b.ISBN] = b
	c.notify(fmt.Sprintf("Added book: %s", b.Title))
}

// Remove deletes the book with the given ISBN. Unknown ISBNs are ignored
// without notifying anyone.
func (c *Catalog) Remove(isbn string) {
	b, ok := c.books[isbn]
	if !ok {
		return
	}
	delete(c.books, isbn)
	for i, k := range c.order {
		if k == isbn {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.notify(fmt.Sprintf("Removed book: %s", b.Title))
}

// Get returns the book stored under isbn.
func (c *Catalog) Get(isbn string) (entity.Book, bool) {
	b, ok := c.books[isbn]
	return b, ok
}

// Books returns every book in insertion order.
func (c *Catalog) Books() []entity.Book {
	out := make([]entity.Book, 0, len(c.order))
	for _, isbn := range c.order {
		out = append(out, c.books[isbn])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// Search hands the current books to strategy and returns its matches.
func (c *Catalog) Search(strategy SearchStrategy, query string) []entity.Book {
	return strategy.Search(c.Books(), query)
}

func (c *Catalog) notify(message string) {
	for _, o := range c.observers {
		o.Update(message)
	}
}

// replace swaps the whole book set without notifying observers.
func (c *Catalog) replace(books []entity.Book) {
	c.books = make(map[string]entity.Book, len(books))
	c.order = make([]string, 0, len(books))
	for _, b := range books {
		if _, exists := c.books[b.ISBN]; !exists {
			c.order = append(c.order, b.ISBN)
		}
		c.books[b.ISBN] = b
	}
}
