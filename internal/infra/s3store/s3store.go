// Package s3store is the "s3" strategy: invoice records are uploaded as JSON
// objects to an S3 bucket.
package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

// uploader is the slice of s3manager.Uploader the store needs; tests provide
// their own.
type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type Store struct {
	up     uploader
	bucket string
	prefix string
	now    func() time.Time
}

type Option func(*Store)

// WithUploader replaces the AWS uploader (tests).
func WithUploader(up uploader) Option {
	return func(s *Store) { s.up = up }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(cfg domain.S3Config, opts ...Option) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, &domain.OpError{
			Op:   "s3store.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("s3 bucket is required: %w", domain.ErrInvalidConfig),
		}
	}

	s := &Store{
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.up == nil {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.Region),
		})
		if err != nil {
			return nil, &domain.OpError{
				Op:   "s3store.session",
				Kind: domain.KindInvalidConfig,
				Err:  err,
			}
		}
		s.up = s3manager.NewUploader(sess)
	}

	return s, nil
}

var _ ports.InvoicePersister = (*Store)(nil)

func (s *Store) Save(ctx context.Context, inv domain.Invoice) (domain.SaveReceipt, error) {
	b, err := json.Marshal(inv.Record())
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "s3store.marshal",
			Kind: domain.KindPersist,
			Err:  err,
		}
	}

	ts := s.now().UTC()
	key := path.Join(s.prefix, fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slugify(inv.Book().Name())))

	_, err = s.up.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return domain.SaveReceipt{}, &domain.OpError{
			Op:   "s3store.upload",
			Kind: domain.KindPersist,
			Path: "s3://" + s.bucket + "/" + key,
			Err:  err,
		}
	}

	return domain.SaveReceipt{
		SaveType: inv.SaveType(),
		Location: "s3://" + s.bucket + "/" + key,
		SavedAt:  ts,
	}, nil
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
