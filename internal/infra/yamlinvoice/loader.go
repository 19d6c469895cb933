// Package yamlinvoice loads invoice documents from YAML files.
package yamlinvoice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

type Loader struct {
	invoicesDir string
}

type Option func(*Loader)

func WithInvoicesDir(dir string) Option {
	return func(l *Loader) { l.invoicesDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{invoicesDir: "invoices"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.InvoiceLoader = (*Loader)(nil)

func (l *Loader) LoadDocument(path string) (domain.InvoiceDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.InvoiceDocument{}, &domain.OpError{
			Op:   "yamlinvoice.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yd yamlDocument
	if err := yaml.Unmarshal(b, &yd); err != nil {
		return domain.InvoiceDocument{}, &domain.OpError{
			Op:   "yamlinvoice.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yd)
}

func (l *Loader) ListDocuments(root string) ([]domain.DocumentRef, error) {
	dir := filepath.Join(root, l.invoicesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlinvoice.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.DocumentRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readDocumentName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.DocumentRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readDocumentName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlDocument struct {
	Name     string        `yaml:"name"`
	Invoices []yamlInvoice `yaml:"invoices"`
}

type yamlInvoice struct {
	Book         yamlBook `yaml:"book"`
	Quantity     int      `yaml:"quantity"`
	DiscountRate float64  `yaml:"discount_rate"`
	TaxRate      float64  `yaml:"tax_rate"`
	SaveType     string   `yaml:"save_type"`
}

type yamlBook struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

func mapAndValidate(path string, yd yamlDocument) (domain.InvoiceDocument, error) {
	name := strings.TrimSpace(yd.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(yd.Invoices) == 0 {
		return domain.InvoiceDocument{}, invalidField(path, "invoices", "at least one invoice is required")
	}

	doc := domain.InvoiceDocument{
		Name:     name,
		Invoices: make([]domain.Invoice, 0, len(yd.Invoices)),
	}

	for i, yi := range yd.Invoices {
		fieldPrefix := fmt.Sprintf("invoices[%d]", i)

		book, err := domain.NewBook(yi.Book.Name, yi.Book.Price)
		if err != nil {
			return domain.InvoiceDocument{}, invalidField(path, fieldPrefix+".book", err.Error())
		}

		tag, err := domain.ParseSaveType(yi.SaveType)
		if err != nil {
			return domain.InvoiceDocument{}, invalidField(path, fieldPrefix+".save_type", err.Error())
		}

		inv, err := domain.NewInvoice(book, yi.Quantity, yi.DiscountRate, yi.TaxRate, tag)
		if err != nil {
			return domain.InvoiceDocument{}, invalidField(path, fieldPrefix, err.Error())
		}

		doc.Invoices = append(doc.Invoices, inv)
	}

	return doc, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlinvoice.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
