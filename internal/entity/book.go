package entity

// Book is a catalog entry keyed by ISBN.
type Book struct {
	Title  string `json:"title" yaml:"title" validate:"required"`
	Author string `json:"author" yaml:"author" validate:"required"`
	ISBN   string `json:"isbn" yaml:"isbn" validate:"required"`
}

func (Book) Kind() string { return "book" }
