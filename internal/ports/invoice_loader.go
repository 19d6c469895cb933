package ports

import "github.com/aalvaropc/factura/internal/domain"

// InvoiceLoader loads invoice documents from a source (e.g., filesystem).
type InvoiceLoader interface {
	LoadDocument(path string) (domain.InvoiceDocument, error)
	ListDocuments(root string) ([]domain.DocumentRef, error)
}
