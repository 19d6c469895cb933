// Package pgstore is the "postgres" strategy: invoices go into a shared
// PostgreSQL database.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id            BIGSERIAL PRIMARY KEY,
	book_name     TEXT             NOT NULL,
	book_price    DOUBLE PRECISION NOT NULL,
	quantity      INTEGER          NOT NULL,
	discount_rate DOUBLE PRECISION NOT NULL,
	tax_rate      DOUBLE PRECISION NOT NULL,
	save_type     TEXT             NOT NULL,
	total         DOUBLE PRECISION NOT NULL,
	created_at    TIMESTAMPTZ      NOT NULL
);`

// Store persists invoices in PostgreSQL.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open connects to PostgreSQL and ensures the invoices table exists.
func Open(dsn string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, &domain.OpError{
			Op:   "pgstore.open",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("postgres dsn is required: %w", domain.ErrInvalidConfig),
		}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "pgstore.open",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &domain.OpError{
			Op:   "pgstore.ping",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &domain.OpError{
			Op:   "pgstore.schema",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}

	s := &Store{db: db, now: time.Now}
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

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO invoices
			(book_name, book_price, quantity, discount_rate, tax_rate, save_type, total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.Book.Name, rec.Book.Price, rec.Quantity, rec.DiscountRate,
		rec.TaxRate, rec.SaveType, rec.Total, ts,
	).Scan(&id)
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "pgstore.insert",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: fmt.Sprintf("postgres://invoices/%d", id),
		SavedAt:  ts,
	}, nil
}
