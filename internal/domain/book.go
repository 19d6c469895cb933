package domain

import (
	"fmt"
	"strings"
)

// Book is an immutable catalog item an invoice is issued for.
// Use NewBook; the zero value is not a valid book.
type Book struct {
	name  string
	price float64
}

func NewBook(name string, price float64) (Book, error) {
	if strings.TrimSpace(name) == "" {
		return Book{}, fmt.Errorf("book name is required: %w", ErrInvalidInvoice)
	}
	if price < 0 {
		return Book{}, fmt.Errorf("book price must be >= 0, got %v: %w", price, ErrInvalidInvoice)
	}
	return Book{name: name, price: price}, nil
}

func (b Book) Name() string   { return b.name }
func (b Book) Price() float64 { return b.price }
