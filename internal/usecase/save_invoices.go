package usecase

import (
	"context"
	"time"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

// SaveInvoices persists every invoice of one document through the strategy
// each invoice's save-type tag resolves to.
type SaveInvoices struct {
	invoices ports.InvoiceLoader
	resolver ports.StrategyResolver
}

func NewSaveInvoices(il ports.InvoiceLoader, sr ports.StrategyResolver) *SaveInvoices {
	return &SaveInvoices{
		invoices: il,
		resolver: sr,
	}
}

// Execute loads a document and saves its invoices one by one. A failing
// invoice is recorded in the run and does not abort the rest of the batch.
// overrideTag, when non-empty, replaces every invoice's own tag.
func (uc *SaveInvoices) Execute(ctx context.Context, docPath string, overrideTag domain.SaveType) (domain.SaveRun, error) {
	doc, err := uc.invoices.LoadDocument(docPath)
	if err != nil {
		return domain.SaveRun{}, err
	}

	run := domain.SaveRun{
		DocumentName: doc.Name,
		DocumentPath: docPath,
		StartedAt:    time.Now(),
		Results:      make([]domain.SaveResult, 0, len(doc.Invoices)),
	}

	for _, inv := range doc.Invoices {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		tag := inv.SaveType()
		if overrideTag != "" {
			tag = overrideTag
		}

		result := domain.SaveResult{
			BookName: inv.Book().Name(),
			SaveType: tag,
			Total:    inv.Total(),
		}

		strategy, err := uc.resolver.Resolve(tag)
		if err != nil {
			result.Error = domain.NewSaveError(err)
			run.Results = append(run.Results, result)
			continue
		}

		receipt, err := strategy.Save(ctx, inv)
		if err != nil {
			result.Error = domain.NewSaveError(err)
			run.Results = append(run.Results, result)
			continue
		}

		result.Receipt = &receipt
		run.Results = append(run.Results, result)
	}

	run.EndedAt = time.Now()
	return run, nil
}
