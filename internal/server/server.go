// Package server implements the invoiced HTTP receiver: the remote end of the
// "server" save type.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

// Server accepts invoice records over HTTP and stores them through a local
// persistence strategy.
type Server struct {
	store ports.InvoicePersister
	log   *slog.Logger
}

func New(store ports.InvoicePersister, log *slog.Logger) *Server {
	return &Server{store: store, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/invoices", s.handleSaveInvoice).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSaveInvoice(w http.ResponseWriter, r *http.Request) {
	var rec domain.InvoiceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Rebuild the invoice through the domain constructor so the invariants
	// (and the total) are re-established on this side of the wire.
	inv, err := invoiceFromRecord(rec)
	if err != nil {
		s.log.Warn("invoice.rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := s.store.Save(r.Context(), inv)
	if err != nil {
		s.log.Error("invoice.save_failed", "book", inv.Book().Name(), "error", err)
		writeError(w, http.StatusInternalServerError, "could not persist invoice")
		return
	}

	s.log.Info("invoice.saved", "book", inv.Book().Name(), "total", inv.Total(), "location", receipt.Location)
	writeJSON(w, http.StatusCreated, map[string]string{"id": receipt.Location})
}

func invoiceFromRecord(rec domain.InvoiceRecord) (domain.Invoice, error) {
	book, err := domain.NewBook(rec.Book.Name, rec.Book.Price)
	if err != nil {
		return domain.Invoice{}, err
	}

	tag, err := domain.ParseSaveType(rec.SaveType)
	if err != nil {
		return domain.Invoice{}, err
	}

	return domain.NewInvoice(book, rec.Quantity, rec.DiscountRate, rec.TaxRate, tag)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
