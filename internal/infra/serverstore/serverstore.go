// Package serverstore persists invoices by POSTing them to a remote receiver
// (e.g., an invoiced instance).
package serverstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/infra/httpclient"
	"github.com/aalvaropc/factura/internal/ports"
)

type Store struct {
	exec        *httpclient.Executor
	url         string
	receiptPath string
	now         func() time.Time
}

type Option func(*Store)

// WithExecutor sets a custom executor (tests use one bound to httptest).
func WithExecutor(exec *httpclient.Executor) Option {
	return func(s *Store) { s.exec = exec }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(cfg domain.ServerConfig, opts ...Option) (*Store, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, &domain.OpError{
			Op:   "serverstore.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("server url is required: %w", domain.ErrInvalidConfig),
		}
	}

	s := &Store{
		exec:        httpclient.NewExecutor(),
		url:         cfg.URL,
		receiptPath: strings.TrimSpace(cfg.ReceiptPath),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ ports.InvoicePersister = (*Store)(nil)

func (s *Store) Save(ctx context.Context, inv domain.Invoice) (domain.SaveReceipt, error) {
	payload, err := json.Marshal(inv.Record())
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "serverstore.marshal",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "serverstore.build",
			Kind: domain.KindInvalidConfig,
			Path: s.url,
			Err:  err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.exec.Do(ctx, req)
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "serverstore.post",
			Kind: domain.KindPersist,
			Path: s.url,
			Err:  err,
		}
	}

	if resp.Status < 200 || resp.Status > 299 {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "serverstore.post",
			Kind: domain.KindPersist,
			Path: s.url,
			Err:  fmt.Errorf("server responded %d: %w", resp.Status, domain.ErrPersist),
		}
	}

	location := s.url
	if id := s.extractReceiptID(resp.BodyBytes); id != "" {
		location = s.url + "#" + id
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: location,
		SavedAt:  s.now().UTC(),
	}, nil
}

// extractReceiptID pulls the remote receipt id out of the response body.
// Best effort: a server that answers with an unexpected shape still counts
// as a successful save.
func (s *Store) extractReceiptID(body []byte) string {
	if s.receiptPath == "" || len(body) == 0 {
		return ""
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	val, err := jsonpath.Get(s.receiptPath, doc)
	if err != nil || val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}
