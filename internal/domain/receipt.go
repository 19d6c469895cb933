package domain

import "time"

// SaveReceipt is the proof a strategy returns after persisting an invoice.
type SaveReceipt struct {
	SaveType SaveType
	Location string // file path, URL, table row ref, object key...
	SavedAt  time.Time
}

// SaveError is a structured error carried inside a run summary.
type SaveError struct {
	Kind    ErrorKind
	Message string
}

// NewSaveError classifies err into a SaveError. Nil in, nil out.
func NewSaveError(err error) *SaveError {
	if err == nil {
		return nil
	}
	kind := KindPersist
	for _, k := range []ErrorKind{
		KindNotFound,
		KindInvalidConfig,
		KindInvalidInvoice,
		KindUnknownSaveType,
	} {
		if IsKind(err, k) {
			kind = k
			break
		}
	}
	return &SaveError{Kind: kind, Message: err.Error()}
}

// SaveResult is the outcome for a single invoice within a run.
type SaveResult struct {
	BookName string
	SaveType SaveType
	Total    float64

	Receipt *SaveReceipt
	Error   *SaveError
}

// Failed reports whether this invoice could not be persisted.
func (r SaveResult) Failed() bool { return r.Error != nil }

// SaveRun summarizes persisting every invoice of one document.
type SaveRun struct {
	DocumentName string
	DocumentPath string

	StartedAt time.Time
	EndedAt   time.Time

	Results []SaveResult
}

// Failures counts invoices that could not be persisted.
func (r SaveRun) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}
