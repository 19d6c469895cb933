package s3store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/aalvaropc/factura/internal/domain"
)

type fakeUploader struct {
	input *s3manager.UploadInput
	err   error
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{}, nil
}

func testInvoice(t *testing.T) domain.Invoice {
	t.Helper()
	book, err := domain.NewBook("Programming Pearls", 35.0)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	inv, err := domain.NewInvoice(book, 1, 0, 0, domain.SaveTypeS3)
	if err != nil {
		t.Fatalf("NewInvoice: %v", err)
	}
	return inv
}

func TestSave_UploadsRecord(t *testing.T) {
	up := &fakeUploader{}
	fixed := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	store, err := New(
		domain.S3Config{Bucket: "billing", Prefix: "invoices", Region: "eu-west-1"},
		WithUploader(up),
		WithNow(func() time.Time { return fixed }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	receipt, err := store.Save(context.Background(), testInvoice(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	wantKey := "invoices/20260506T070809Z_programming-pearls.json"
	if got := aws.StringValue(up.input.Key); got != wantKey {
		t.Fatalf("key = %q, want %q", got, wantKey)
	}
	if got := aws.StringValue(up.input.Bucket); got != "billing" {
		t.Fatalf("bucket = %q", got)
	}
	if want := "s3://billing/" + wantKey; receipt.Location != want {
		t.Fatalf("location = %q, want %q", receipt.Location, want)
	}

	body, err := io.ReadAll(up.input.Body)
	if err != nil {
		t.Fatalf("read uploaded body: %v", err)
	}
	var rec domain.InvoiceRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("unmarshal uploaded body: %v", err)
	}
	if rec.Book.Name != "Programming Pearls" {
		t.Fatalf("uploaded record book = %q", rec.Book.Name)
	}
}

func TestSave_UploadFailureIsPersistError(t *testing.T) {
	up := &fakeUploader{err: errors.New("access denied")}

	store, err := New(domain.S3Config{Bucket: "billing"}, WithUploader(up))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = store.Save(context.Background(), testInvoice(t))
	if err == nil {
		t.Fatal("expected persist error")
	}
	if !domain.IsKind(err, domain.KindPersist) {
		t.Fatalf("expected kind persist, got %v", err)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("underlying error lost: %v", err)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(domain.S3Config{}); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
