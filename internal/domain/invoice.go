package domain

import "fmt"

// Invoice is an immutable billing document for a quantity of one book.
// The total is computed once at construction and never recomputed; callers
// read it through Total(). Use NewInvoice, the zero value is not valid.
type Invoice struct {
	book         Book
	quantity     int
	discountRate float64
	taxRate      float64
	saveType     SaveType

	total float64
}

func NewInvoice(book Book, quantity int, discountRate, taxRate float64, saveType SaveType) (Invoice, error) {
	if book.Name() == "" {
		return Invoice{}, fmt.Errorf("invoice requires a book: %w", ErrInvalidInvoice)
	}
	if quantity <= 0 {
		return Invoice{}, fmt.Errorf("quantity must be > 0, got %d: %w", quantity, ErrInvalidInvoice)
	}
	if discountRate < 0 || discountRate > 1 {
		return Invoice{}, fmt.Errorf("discount rate must be in [0,1], got %v: %w", discountRate, ErrInvalidInvoice)
	}
	if taxRate < 0 {
		return Invoice{}, fmt.Errorf("tax rate must be >= 0, got %v: %w", taxRate, ErrInvalidInvoice)
	}
	if saveType == "" {
		return Invoice{}, fmt.Errorf("save type is required: %w", ErrInvalidInvoice)
	}

	price := book.Price()
	total := (price - price*discountRate) * float64(quantity) * (1 + taxRate)

	return Invoice{
		book:         book,
		quantity:     quantity,
		discountRate: discountRate,
		taxRate:      taxRate,
		saveType:     saveType,
		total:        total,
	}, nil
}

func (i Invoice) Book() Book            { return i.book }
func (i Invoice) Quantity() int         { return i.quantity }
func (i Invoice) DiscountRate() float64 { return i.discountRate }
func (i Invoice) TaxRate() float64      { return i.taxRate }
func (i Invoice) SaveType() SaveType    { return i.saveType }

// Total is the frozen amount computed at construction.
func (i Invoice) Total() float64 { return i.total }

// Record returns a serializable snapshot of the invoice for adapters.
// The domain stays free of encoding tags except on this view type.
func (i Invoice) Record() InvoiceRecord {
	return InvoiceRecord{
		Book: BookRecord{
			Name:  i.book.Name(),
			Price: i.book.Price(),
		},
		Quantity:     i.quantity,
		DiscountRate: i.discountRate,
		TaxRate:      i.taxRate,
		SaveType:     string(i.saveType),
		Total:        i.total,
	}
}

// BookRecord is the serializable view of a Book.
type BookRecord struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// InvoiceRecord is the serializable view of an Invoice. Adapters persist
// records; the receiver service decodes them back through NewInvoice so a
// forged total never survives a round trip.
type InvoiceRecord struct {
	Book         BookRecord `json:"book"`
	Quantity     int        `json:"quantity"`
	DiscountRate float64    `json:"discount_rate"`
	TaxRate      float64    `json:"tax_rate"`
	SaveType     string     `json:"save_type"`
	Total        float64    `json:"total"`
}
