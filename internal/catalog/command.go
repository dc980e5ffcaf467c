package catalog

import "librarycatalog/internal/entity"

// Command is a catalog operation bound to its arguments, run on demand.
type Command interface {
	Execute()
}

// AddBookCommand adds one book to one catalog.
type AddBookCommand struct {
	catalog *Catalog
	book    entity.Book
}

func NewAddBookCommand(c *Catalog, b entity.Book) AddBookCommand {
	return AddBookCommand{catalog: c, book: b}
}

func (cmd AddBookCommand) Execute() {
	cmd.catalog.Add(cmd.book)
}

// RemoveBookCommand removes the book with one ISBN from one catalog.
type RemoveBookCommand struct {
	catalog *Catalog
	isbn    string
}

func NewRemoveBookCommand(c *Catalog, isbn string) RemoveBookCommand {
	return RemoveBookCommand{catalog: c, isbn: isbn}
}

func (cmd RemoveBookCommand) Execute() {
	cmd.catalog.Remove(cmd.isbn)
}
