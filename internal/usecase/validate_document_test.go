package usecase

import (
	"context"
	"testing"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

func TestValidate_LoadsDocument(t *testing.T) {
	loader := &stubLoader{doc: domain.InvoiceDocument{
		Name:     "ok",
		Invoices: []domain.Invoice{mustInvoice(t, "A", domain.SaveTypeFile)},
	}}

	doc, err := NewValidateDocument(loader).Execute(context.Background(), "x.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if doc.Name != "ok" {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestValidate_PropagatesLoadErrors(t *testing.T) {
	loader := &stubLoader{err: &domain.OpError{Op: "yamlinvoice.load", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}}

	if _, err := NewValidateDocument(loader).Execute(context.Background(), "x.yaml"); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestValidate_WithResolverChecksTags(t *testing.T) {
	loader := &stubLoader{doc: domain.InvoiceDocument{
		Name:     "d",
		Invoices: []domain.Invoice{mustInvoice(t, "A", domain.SaveType("carrier-pigeon"))},
	}}

	r := newRegistry(t, map[domain.SaveType]ports.InvoicePersister{
		domain.SaveTypeFile: &recordingStrategy{tag: domain.SaveTypeFile},
	})

	_, err := NewValidateDocument(loader, WithResolver(r)).Execute(context.Background(), "x.yaml")
	if !domain.IsKind(err, domain.KindUnknownSaveType) {
		t.Fatalf("expected unknown_save_type, got %v", err)
	}
}
