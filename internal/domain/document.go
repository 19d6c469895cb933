package domain

// InvoiceDocument groups invoices authored together in one file (Git-friendly).
type InvoiceDocument struct {
	Name     string
	Invoices []Invoice
}

// DocumentRef is a lightweight reference to an invoice document on disk.
type DocumentRef struct {
	Name string
	Path string
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}
