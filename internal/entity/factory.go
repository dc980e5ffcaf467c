package entity

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingField is returned when a factory is not given a field its entity requires.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownField is returned when a factory is given a field its entity does not have.
	ErrUnknownField = errors.New("unknown field")
)

// Fields are the named values an entity is constructed from.
type Fields map[string]string

// Entity is anything a Factory can produce.
type Entity interface {
	Kind() string
}

// Factory constructs one kind of entity from named fields.
// Values are bound as given; only the set of field names is checked.
type Factory interface {
	Create(fields Fields) (Entity, error)
}

type BookFactory struct{}

func (BookFactory) Create(fields Fields) (Entity, error) {
	v, err := bind(fields, "title", "author", "isbn")
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return Book{Title: v[0], Author: v[1], ISBN: v[2]}, nil
}

type LibrarianFactory struct{}

func (LibrarianFactory) Create(fields Fields) (Entity, error) {
	v, err := bind(fields, "name", "id")
	if err != nil {
		return nil, fmt.Errorf("create librarian: %w", err)
	}
	return Librarian{Name: v[0], ID: v[1]}, nil
}

type ReaderFactory struct{}

func (ReaderFactory) Create(fields Fields) (Entity, error) {
	v, err := bind(fields, "name", "id")
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}
	return Reader{Name: v[0], ID: v[1]}, nil
}

// FactoryFor returns the factory registered for an entity kind.
func FactoryFor(kind string) (Factory, bool) {
	switch kind {
	case Book{}.Kind():
		return BookFactory{}, true
	case Librarian{}.Kind():
		return LibrarianFactory{}, true
	case Reader{}.Kind():
		return ReaderFactory{}, true
	}
	return nil, false
}

// bind returns the values of names in order. Every name must be present and
// no other key may appear.
func bind(fields Fields, names ...string) ([]string, error) {
	values := make([]string, len(names))
	known := make(map[string]bool, len(names))
	for i, name := range names {
		v, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
		}
		values[i] = v
		known[name] = true
	}

	var extra []string
	for k := range fields {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, extra[0])
	}
	return values, nil
}
