package usecase

import (
	"context"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

// ValidateDocument statically checks a document without persisting anything.
type ValidateDocument struct {
	invoices ports.InvoiceLoader
	resolver ports.StrategyResolver
}

type ValidateOption func(*ValidateDocument)

// WithResolver also verifies that every save-type tag is backed by a
// registered strategy.
func WithResolver(sr ports.StrategyResolver) ValidateOption {
	return func(uc *ValidateDocument) { uc.resolver = sr }
}

func NewValidateDocument(il ports.InvoiceLoader, opts ...ValidateOption) *ValidateDocument {
	uc := &ValidateDocument{invoices: il}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads the document (which runs all construction-time invariants)
// and, when a resolver is configured, resolves every tag without saving.
func (uc *ValidateDocument) Execute(ctx context.Context, docPath string) (domain.InvoiceDocument, error) {
	doc, err := uc.invoices.LoadDocument(docPath)
	if err != nil {
		return domain.InvoiceDocument{}, err
	}

	if uc.resolver != nil {
		for _, inv := range doc.Invoices {
			if err := ctx.Err(); err != nil {
				return domain.InvoiceDocument{}, err
			}
			if _, err := uc.resolver.Resolve(inv.SaveType()); err != nil {
				return domain.InvoiceDocument{}, err
			}
		}
	}

	return doc, nil
}
