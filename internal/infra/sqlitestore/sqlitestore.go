// Package sqlitestore is the "localdb" strategy: invoices go into a SQLite
// database under the workspace.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	book_name     TEXT    NOT NULL,
	book_price    REAL    NOT NULL,
	quantity      INTEGER NOT NULL,
	discount_rate REAL    NOT NULL,
	tax_rate      REAL    NOT NULL,
	save_type     TEXT    NOT NULL,
	total         REAL    NOT NULL,
	created_at    TEXT    NOT NULL
);`

// Store persists invoices in a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the SQLite database and ensures the schema.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &domain.OpError{
			Op:   "sqlitestore.open",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("database path is required: %w", domain.ErrInvalidConfig),
		}
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.OpError{
				Op:   "sqlitestore.mkdir",
				Kind: domain.KindPersist,
				Path: dir,
				Err:  err,
			}
		}
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "sqlitestore.open",
			Kind: domain.KindPersist,
			Path: cleanPath,
			Err:  err,
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &domain.OpError{
			Op:   "sqlitestore.ping",
			Kind: domain.KindPersist,
			Path: cleanPath,
			Err:  err,
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &domain.OpError{
			Op:   "sqlitestore.schema",
			Kind: domain.KindPersist,
			Path: cleanPath,
			Err:  err,
		}
	}

	s := &Store{db: db, path: cleanPath, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.InvoicePersister = (*Store)(nil)

func (s *Store) Save(ctx context.Context, inv domain.Invoice) (domain.SaveReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.SaveReceipt{}, err
	}

	ts := s.now().UTC()
	rec := inv.Record()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices
			(book_name, book_price, quantity, discount_rate, tax_rate, save_type, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Book.Name, rec.Book.Price, rec.Quantity, rec.DiscountRate,
		rec.TaxRate, rec.SaveType, rec.Total, ts.Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "sqlitestore.insert",
			Kind: domain.KindPersist,
			Path: s.path,
			Err:  err,
		}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "sqlitestore.insert",
			Kind: domain.KindPersist,
			Path: s.path,
			Err:  err,
		}
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: fmt.Sprintf("%s#invoices/%d", s.path, id),
		SavedAt:  ts,
	}, nil
}
