// Package filestore persists invoices as JSON files under the workspace
// receipts directory.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

const defaultReceiptsDir = "receipts"

type Store struct {
	rootDir         string
	receiptsDirName string
	writeIndex      bool
	now             func() time.Time
}

type Option func(*Store)

// WithIndex enables a simple JSONL index: receipts/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *Store) { s.writeIndex = enabled }
}

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
		writeIndex:      false,
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
			Op:   "filestore.mkdir",
			Kind: domain.KindPersist,
			Path: dir,
			Err:  err,
		}
	}

	ts := s.now().UTC()
	slug := slugify(inv.Book().Name())
	if slug == "" {
		slug = "invoice"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(inv.Record(), "", "  ")
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "filestore.marshal",
			Kind: domain.KindPersist,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "filestore.write",
			Kind: domain.KindPersist,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "filestore.rename",
			Kind: domain.KindPersist,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, filename, inv, ts)
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: path,
		SavedAt:  ts,
	}, nil
}

func (s *Store) appendIndex(dir, filename string, inv domain.Invoice, ts time.Time) error {
	type idx struct {
		File    string    `json:"file"`
		Book    string    `json:"book"`
		Total   float64   `json:"total"`
		SavedAt time.Time `json:"saved_at"`
	}
	line, err := json.Marshal(idx{
		File:    filename,
		Book:    inv.Book().Name(),
		Total:   inv.Total(),
		SavedAt: ts,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '_' || r == '-' || r == '.':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// any other char -> dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
