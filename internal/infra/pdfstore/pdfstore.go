// Package pdfstore renders invoices to PDF files under the workspace
// receipts directory.
package pdfstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

const defaultReceiptsDir = "receipts"

type Store struct {
	rootDir         string
	receiptsDirName string
	now             func() time.Time
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(root string, cfg domain.Config, opts ...Option) *Store {
	dir := cfg.Paths.ReceiptsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReceiptsDir
	}

	s := &Store{
		rootDir:         root,
		receiptsDirName: dir,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.InvoicePersister = (*Store)(nil)

func (s *Store) Save(ctx context.Context, inv domain.Invoice) (domain.SaveReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.SaveReceipt{}, err
	}

	dir := filepath.Join(s.rootDir, s.receiptsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "pdfstore.mkdir",
			Kind: domain.KindPersist,
			Path: dir,
			Err:  err,
		}
	}

	ts := s.now().UTC()
	filename := fmt.Sprintf("%s_%s.pdf", ts.Format("20060102T150405Z"), slugify(inv.Book().Name()))
	path := filepath.Join(dir, filename)

	if err := render(inv, ts, path); err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "pdfstore.render",
			Kind: domain.KindPersist,
			Path: path,
			Err:  err,
		}
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: path,
		SavedAt:  ts,
	}, nil
}

func render(inv domain.Invoice, ts time.Time, path string) error {
	rec := inv.Record()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 12, "Invoice")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Book", rec.Book.Name},
		{"Unit price", fmt.Sprintf("%.2f", rec.Book.Price)},
		{"Quantity", fmt.Sprintf("%d", rec.Quantity)},
		{"Discount rate", fmt.Sprintf("%.2f", rec.DiscountRate)},
		{"Tax rate", fmt.Sprintf("%.2f", rec.TaxRate)},
		{"Issued at", ts.Format(time.RFC3339)},
	}
	for _, row := range rows {
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(45, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("%.2f", rec.Total), "T", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "invoice"
	}
	return out
}
