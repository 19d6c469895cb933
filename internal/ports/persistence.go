package ports

import (
	"context"

	"github.com/aalvaropc/factura/internal/domain"
)

// InvoicePersister persists one invoice to a single medium.
//
// Implementations borrow the invoice for the duration of the call and keep no
// invoice state across calls. Saving the same invoice twice may duplicate;
// idempotency is not part of the contract.
type InvoicePersister interface {
	Save(ctx context.Context, inv domain.Invoice) (domain.SaveReceipt, error)
}

// StrategyResolver maps a save-type tag to its persistence strategy.
type StrategyResolver interface {
	Resolve(tag domain.SaveType) (InvoicePersister, error)
}
