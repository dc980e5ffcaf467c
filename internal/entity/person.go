package entity

// Librarian works the catalog. Nothing in the catalog consumes it yet.
type Librarian struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

func (Librarian) Kind() string { return "librarian" }

// Reader borrows from the catalog. Nothing in the catalog consumes it yet.
type Reader struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

func (Reader) Kind() string { return "reader" }
