package yamlinvoice

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/factura/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const validDoc = `
name: February billing
invoices:
  - book:
      name: Design Patterns
      price: 1090.0
    quantity: 1
    discount_rate: 0.1
    tax_rate: 0.15
    save_type: file
  - book:
      name: SICP
      price: 80.0
    quantity: 2
    save_type: LocalDB
`

func TestLoadDocument_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feb.yaml")
	writeFile(t, path, validDoc)

	doc, err := NewLoader().LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	if doc.Name != "February billing" {
		t.Fatalf("name = %q", doc.Name)
	}
	if len(doc.Invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(doc.Invoices))
	}

	first := doc.Invoices[0]
	if first.Book().Name() != "Design Patterns" {
		t.Fatalf("book = %q", first.Book().Name())
	}
	if math.Abs(first.Total()-1126.35) > 1e-9 {
		t.Fatalf("total = %v, want 1126.35", first.Total())
	}

	// Tags are normalized on parse.
	if doc.Invoices[1].SaveType() != domain.SaveTypeLocalDB {
		t.Fatalf("save type = %q", doc.Invoices[1].SaveType())
	}
}

func TestLoadDocument_DefaultsNameFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "march-billing.yaml")
	writeFile(t, path, `
invoices:
  - book: {name: K&R, price: 30}
    quantity: 1
    save_type: file
`)

	doc, err := NewLoader().LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if doc.Name != "march-billing" {
		t.Fatalf("name = %q, want march-billing", doc.Name)
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	tmp := t.TempDir()

	cases := []struct {
		name    string
		content string
		kind    domain.ErrorKind
	}{
		{"empty invoices", "name: x\ninvoices: []\n", domain.KindInvalidConfig},
		{"bad yaml", "invoices: [\n", domain.KindInvalidConfig},
		{"blank book name", `
invoices:
  - book: {name: "", price: 10}
    quantity: 1
    save_type: file
`, domain.KindInvalidConfig},
		{"zero quantity", `
invoices:
  - book: {name: x, price: 10}
    quantity: 0
    save_type: file
`, domain.KindInvalidConfig},
		{"missing save type", `
invoices:
  - book: {name: x, price: 10}
    quantity: 1
`, domain.KindInvalidConfig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(tmp, slugTestName(tc.name)+".yaml")
			writeFile(t, path, tc.content)

			_, err := NewLoader().LoadDocument(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsKind(err, tc.kind) {
				t.Fatalf("expected kind %q, got %v", tc.kind, err)
			}
		})
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadDocument(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected underlying os error, got %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "invoices", "b.yaml"), "name: Beta\ninvoices: []\n")
	writeFile(t, filepath.Join(root, "invoices", "a.yml"), "name: Alpha\ninvoices: []\n")
	writeFile(t, filepath.Join(root, "invoices", "notes.txt"), "ignored")

	refs, err := NewLoader().ListDocuments(root)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Name != "Alpha" || refs[1].Name != "Beta" {
		t.Fatalf("refs not sorted by name: %+v", refs)
	}
}

func slugTestName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			out = append(out, '-')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
