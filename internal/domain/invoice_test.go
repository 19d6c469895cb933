package domain

import (
	"errors"
	"math"
	"testing"
)

func mustBook(t *testing.T, name string, price float64) Book {
	t.Helper()
	b, err := NewBook(name, price)
	if err != nil {
		t.Fatalf("NewBook(%q, %v): %v", name, price, err)
	}
	return b
}

func TestNewInvoice_ComputesTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		quantity int
		discount float64
		tax      float64
		want     float64
	}{
		{"classic example", 1090.0, 1, 0.1, 0.15, 1126.35},
		{"no discount no tax", 20.0, 3, 0, 0, 60.0},
		{"full discount", 99.99, 2, 1, 0.5, 0},
		{"quantity scales", 10.0, 7, 0.5, 0.2, 42.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := NewInvoice(mustBook(t, "clean-architecture", tc.price), tc.quantity, tc.discount, tc.tax, SaveTypeFile)
			if err != nil {
				t.Fatalf("NewInvoice: %v", err)
			}
			if math.Abs(inv.Total()-tc.want) > 1e-9 {
				t.Fatalf("Total = %v, want %v", inv.Total(), tc.want)
			}
		})
	}
}

func TestNewInvoice_RejectsInvalidArguments(t *testing.T) {
	book := mustBook(t, "ddd", 45.0)

	cases := []struct {
		name     string
		quantity int
		discount float64
		tax      float64
		saveType SaveType
	}{
		{"zero quantity", 0, 0.1, 0.1, SaveTypeFile},
		{"negative quantity", -2, 0.1, 0.1, SaveTypeFile},
		{"negative discount", 1, -0.01, 0.1, SaveTypeFile},
		{"discount above one", 1, 1.01, 0.1, SaveTypeFile},
		{"negative tax", 1, 0.1, -0.1, SaveTypeFile},
		{"blank save type", 1, 0.1, 0.1, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInvoice(book, tc.quantity, tc.discount, tc.tax, tc.saveType)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			if !errors.Is(err, ErrInvalidInvoice) {
				t.Fatalf("expected ErrInvalidInvoice, got %v", err)
			}
		})
	}
}

func TestNewInvoice_RejectsZeroBook(t *testing.T) {
	_, err := NewInvoice(Book{}, 1, 0, 0, SaveTypeFile)
	if !errors.Is(err, ErrInvalidInvoice) {
		t.Fatalf("expected ErrInvalidInvoice, got %v", err)
	}
}

func TestNewBook_Validation(t *testing.T) {
	if _, err := NewBook("  ", 10); !errors.Is(err, ErrInvalidInvoice) {
		t.Fatalf("blank name: expected ErrInvalidInvoice, got %v", err)
	}
	if _, err := NewBook("solid", -1); !errors.Is(err, ErrInvalidInvoice) {
		t.Fatalf("negative price: expected ErrInvalidInvoice, got %v", err)
	}
	if b, err := NewBook("free sample", 0); err != nil || b.Price() != 0 {
		t.Fatalf("zero price should be allowed, got book=%+v err=%v", b, err)
	}
}

func TestInvoiceRecord_Snapshot(t *testing.T) {
	inv, err := NewInvoice(mustBook(t, "refactoring", 50.0), 2, 0.5, 0.1, SaveTypeLocalDB)
	if err != nil {
		t.Fatalf("NewInvoice: %v", err)
	}

	rec := inv.Record()
	if rec.Book.Name != "refactoring" || rec.Book.Price != 50.0 {
		t.Fatalf("unexpected book record: %+v", rec.Book)
	}
	if rec.Quantity != 2 || rec.DiscountRate != 0.5 || rec.TaxRate != 0.1 {
		t.Fatalf("unexpected record fields: %+v", rec)
	}
	if rec.SaveType != "localdb" {
		t.Fatalf("save type = %q, want localdb", rec.SaveType)
	}
	if math.Abs(rec.Total-55.0) > 1e-9 {
		t.Fatalf("record total = %v, want 55", rec.Total)
	}
}

func TestParseSaveType(t *testing.T) {
	got, err := ParseSaveType("  File ")
	if err != nil {
		t.Fatalf("ParseSaveType: %v", err)
	}
	if got != SaveTypeFile {
		t.Fatalf("got %q, want %q", got, SaveTypeFile)
	}

	if _, err := ParseSaveType("   "); !errors.Is(err, ErrInvalidInvoice) {
		t.Fatalf("blank tag: expected ErrInvalidInvoice, got %v", err)
	}

	// Unknown tags parse fine; only resolution decides whether they exist.
	got, err = ParseSaveType("carrier-pigeon")
	if err != nil || got != SaveType("carrier-pigeon") {
		t.Fatalf("open tag: got %q err=%v", got, err)
	}
}
